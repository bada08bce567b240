package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Backend selects the storage collaborator.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home            string  // identity directory, e.g. $HOME/.snartnet
	Passphrase      string  // optional; seals stored values
	Backend         Backend // file, sqlite or memory
	LogLevel        string  // zap level name
	MetricsTextfile string  // optional prometheus textfile output
}

// LoadConfig reads configuration from the environment after loading the
// .env file named by ENV_FILE (default ".env"). A missing .env file is not
// an error.
func LoadConfig() (Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	return Config{
		Home:            getEnv("SNARTNET_HOME", DefaultHome()),
		Passphrase:      getEnv("SNARTNET_PASSPHRASE", ""),
		Backend:         Backend(getEnv("SNARTNET_BACKEND", string(BackendFile))),
		LogLevel:        getEnv("SNARTNET_LOG_LEVEL", "warn"),
		MetricsTextfile: getEnv("SNARTNET_METRICS_TEXTFILE", ""),
	}, nil
}

// DefaultHome returns ~/.snartnet, or .snartnet when the home directory is
// unknown.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".snartnet"
	}
	return filepath.Join(home, ".snartnet")
}

// Validate checks that cfg can be wired.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
		if c.Home == "" {
			return fmt.Errorf("backend %s needs a home directory", c.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want file, sqlite or memory)", c.Backend)
	}
	return nil
}

// getEnv returns the value of key, or fallback when it is unset.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
