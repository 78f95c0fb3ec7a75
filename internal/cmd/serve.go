package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/filescout/internal/config"
	"github.com/harrison/filescout/internal/history"
	"github.com/harrison/filescout/internal/logger"
	"github.com/harrison/filescout/internal/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search server",
		Long: `Run the HTTP search server used by the file-manager UI.

Configuration is loaded from .filescout/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  filescout serve
  filescout serve --port 9000
  filescout serve --config custom.yaml --log-level debug
  filescout serve --no-history`,
		Args: cobra.NoArgs,
		RunE: serveCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .filescout/config.yaml)")
	cmd.Flags().String("host", "", "Listen address (overrides config)")
	cmd.Flags().Int("port", 0, "Listen port (overrides config)")
	cmd.Flags().String("log-level", "", "Log verbosity: debug, info, warn, error")
	cmd.Flags().Bool("no-history", false, "Disable search history recording")

	return cmd
}

func serveCommand(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.History.Enabled = false
	}

	log := logger.New(os.Stderr, cfg.LogLevel)

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.NewStore(cfg.History.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, log, store, Version)
	return srv.Start(ctx)
}
