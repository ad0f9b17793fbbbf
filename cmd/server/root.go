package main

import (
	"fmt"
	"log/slog"
	"slices"

	"transaksi-api/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

type app struct {
	envFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "transaksi-api",
		Short:         "HTTP API for recording and listing transactions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(a.serveCmd())
	cmd.AddCommand(a.pingCmd())

	return cmd
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	slog.SetDefault(cfg.Logging.NewLogger(cmd.ErrOrStderr()))
	slog.Debug("Configuration loaded",
		"environment", cfg.Server.Environment,
		"db_driver", cfg.Database.Driver,
	)
	if cfg.IsProduction() && slices.Contains(cfg.Server.CORSAllowOrigins, "*") {
		slog.Warn("CORS allows any origin in production", "hint", "set CORS_ALLOW_ORIGINS")
	}
	return nil
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured database is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s database is reachable\n", a.cfg.Database.Driver)
			return nil
		},
	}
}
