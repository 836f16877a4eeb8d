package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/recipes/internal/config"
	"github.com/vango-dev/recipes/internal/edamam"
	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/middleware"
	"github.com/vango-dev/recipes/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		port       int
		host       string
		urlMode    string
		noTracing  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the recipe search server",
		Long: `Start the HTTP server for the recipe search UI.

Configuration comes from recipes.json (searched upward from the working
directory), then EDAMAM_APP_ID, EDAMAM_APP_KEY and RECIPES_PORT, then
these flags.

Examples:
  recipes serve
  recipes serve --port 8080 --url-mode push`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if urlMode != "" {
				cfg.Server.URLMode = urlMode
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := newLogger(cfg, verbose)
			slog.SetDefault(logger)

			out := cmd.OutOrStdout()
			var searcher server.Searcher
			if err := cfg.RequireCredentials(); err != nil {
				warn(out, "Edamam credentials are not set; search is disabled")
			} else {
				searcher = edamam.FromConfig(cfg, edamam.WithLogger(logger))
			}

			var opts []server.Option
			if cfg.MetricsEnabled() {
				opts = append(opts, server.WithMetrics(middleware.NewMetrics()))
			}
			if !noTracing {
				opts = append(opts, server.WithTracing())
			}

			sc := server.FromConfig(cfg)
			sc.Logger = logger
			srv := server.New(sc, searcher, opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(out, "Listening on %s", cfg.URL())
			if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
				return errors.New("E402").Wrap(err)
			}
			info(out, "Shut down")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to recipes.json")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from recipes.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from recipes.json)")
	cmd.Flags().StringVar(&urlMode, "url-mode", "", "History mode for search URLs: push or replace")
	cmd.Flags().BoolVar(&noTracing, "no-tracing", false, "Disable OpenTelemetry spans")

	return cmd
}

// newLogger builds the server logger from the log section. verbose forces
// debug level.
func newLogger(cfg *config.Config, verbose bool) *slog.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
