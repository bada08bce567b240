package app

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"snartnet/internal/api"
	"snartnet/internal/domain"
	"snartnet/internal/metrics"
	"snartnet/internal/services/identity"
	"snartnet/internal/store"
)

const sqliteFile = "snartnet.db"

// Wire bundles the store, session and handler for the CLI.
type Wire struct {
	Config  Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Store   domain.KeyValueStore
	Session *identity.Session
	API     *api.Handler
	Restore identity.RestoreReport

	closers []func() error
}

// NewWire constructs the dependency graph from cfg and restores the stored
// identity. logger may be nil.
func NewWire(cfg Config, logger *zap.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Wire{Config: cfg, Logger: logger, Metrics: metrics.New()}

	kv, err := w.openStore()
	if err != nil {
		return nil, err
	}
	w.Store = kv

	w.Session = identity.New(kv,
		identity.WithLogger(logger.Named("identity")),
		identity.WithMetrics(w.Metrics))
	w.API = api.NewHandler(w.Session, w.Metrics)

	report, err := w.Session.Init()
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	w.Restore = report
	return w, nil
}

func (w *Wire) openStore() (domain.KeyValueStore, error) {
	cfg := w.Config
	switch cfg.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		sq, err := store.OpenSQLiteStore(filepath.Join(cfg.Home, sqliteFile))
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, sq.Close)
		if cfg.Passphrase != "" {
			return store.NewSealedStore(sq, cfg.Passphrase), nil
		}
		return sq, nil
	case BackendMemory:
		return store.NewMemoryStore(), nil
	default:
		var opts []store.FileStoreOption
		if cfg.Passphrase != "" {
			opts = append(opts, store.WithPassphrase(cfg.Passphrase))
		}
		return store.NewFileStore(cfg.Home, opts...), nil
	}
}

// Close flushes metrics, releases the store and syncs the logger.
func (w *Wire) Close() error {
	var errs []error
	if err := w.Metrics.WriteTextfile(w.Config.MetricsTextfile); err != nil {
		errs = append(errs, err)
	}
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	_ = w.Logger.Sync()
	return errors.Join(errs...)
}
