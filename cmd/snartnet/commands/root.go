package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"snartnet/internal/app"
)

var (
	home            string
	passphrase      string
	backend         string
	logLevel        string
	output          string
	metricsTextfile string

	appCtx *app.Wire
)

// Execute runs the CLI.
func Execute() error {
	err := NewRootCmd().Execute()
	if appCtx != nil {
		// PersistentPostRunE is skipped when a command fails.
		_ = appCtx.Close()
		appCtx = nil
	}
	return err
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "snartnet",
		Short:         "Decentralized social identity: keys, signed profiles, posts and messages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("unknown output format %q (want json or yaml)", output)
			}
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("home") {
				cfg.Home = home
			}
			if flags.Changed("passphrase") {
				cfg.Passphrase = passphrase
			}
			if flags.Changed("backend") {
				cfg.Backend = app.Backend(backend)
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("metrics-textfile") {
				cfg.MetricsTextfile = metricsTextfile
			}

			logger, err := app.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			appCtx, err = app.NewWire(cfg, logger)
			if err != nil {
				return err
			}
			for _, w := range appCtx.Restore.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignored stored %s\n", w.Error())
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			err := appCtx.Close()
			appCtx = nil
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "identity dir (default ~/.snartnet)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing stored keys and backups")
	pf.StringVar(&backend, "backend", string(app.BackendFile), "storage backend: file, sqlite or memory")
	pf.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	pf.StringVar(&metricsTextfile, "metrics-textfile", "", "write prometheus metrics to this file on exit")

	root.AddCommand(
		initCmd(),
		createProfileCmd(),
		updateProfileCmd(),
		showCmd(),
		fingerprintCmd(),
		postCmd(),
		messageCmd(),
		signCmd(),
		verifyCmd(),
		magnetCmd(),
		capabilitiesCmd(),
		backupCmd(),
		mnemonicCmd(),
		resetCmd(),
	)
	return root
}
