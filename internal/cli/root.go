// Package cli is the tradeplan command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rustyeddy/tradeplan/config"
	"github.com/rustyeddy/tradeplan/internal/logging"
	"github.com/rustyeddy/tradeplan/store"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

// RootConfig holds the persistent flags. Flags override the environment,
// which overrides the config file.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	NoColor    bool
}

// app is what every subcommand works from once the root has loaded
// config and logging.
type app struct {
	rc  *RootConfig
	cfg *config.Config
	log *slog.Logger
	now func() time.Time
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	rc := &RootConfig{}
	a := &app{rc: rc, cfg: config.Default(), log: slog.New(slog.DiscardHandler), now: now}

	cmd := &cobra.Command{
		Use:   "tradeplan",
		Short: "Tradeplan — compounding projection and trade journal",
		Long: `Tradeplan projects week-over-week capital growth under fixed
risk/reward assumptions and keeps a journal of actual trades to compare
against the plan.

Examples:
  tradeplan project --capital 1000 --risk 2 --tp 20 --sl 10 --trades 2 --target 100
  tradeplan log add --outcome win --amount 40 --points 20
  tradeplan compare`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional, env "+config.EnvConfig+")")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite database (default from config)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd)
	}

	// Subcommands
	cmd.AddCommand(
		newProjectCmd(a),
		newPlanCmd(a),
		newLogCmd(a),
		newSummaryCmd(a),
		newCompareCmd(a),
		newCurveCmd(a),
		newDataCmd(a),
		newPrefsCmd(a),
		newConfigCmd(a),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradeplan %s\n", version)
		},
	})

	return cmd
}

// setup loads .env, the config file, env overrides and flags, in that
// order, then builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if err := cfg.LoadEnv(); err != nil {
		return err
	}

	path := a.rc.ConfigPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
		if err := cfg.LoadEnv(); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Store.DBPath = a.rc.DBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.rc.LogLevel
	}
	if flags.Changed("no-color") {
		cfg.Log.NoColor = a.rc.NoColor
	}

	log, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:   cfg.Log.Level,
		NoColor: cfg.Log.NoColor,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.log.Debug("config loaded", "config", path, "db", cfg.Store.DBPath)
	return nil
}

func (a *app) openStore() (*store.SQLite, error) {
	s, err := store.NewSQLite(a.cfg.Store.DBPath, store.WithLogger(a.log), store.WithClock(a.now))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return s, nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
