package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/dailycontents/internal/config"
	"github.com/vango-dev/dailycontents/pkg/middleware"
	"github.com/vango-dev/dailycontents/pkg/pages"
	"github.com/vango-dev/dailycontents/pkg/server"
)

func serveCmd(opts *options) *cobra.Command {
	var (
		port   int
		host   string
		noLive bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the page server",
		Long: `Start the HTTP server for the landing and users pages.

Routes:
  /          landing page
  /users     users page
  /healthz   health check
  /metrics   Prometheus metrics (if enabled)
  /_live     activation channel (if live is enabled)

Examples:
  dailycontents serve
  dailycontents serve --port=8080
  dailycontents serve --host=0.0.0.0 --no-live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// Apply command-line overrides
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if noLive {
				cfg.Server.Live = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			printBanner(out)
			info(out, "Listening on %s", cfg.URL())
			fmt.Fprintln(out)

			return newServer(cfg).Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&noLive, "no-live", false, "Serve static pages without the activation channel")

	return cmd
}

// newServer builds the page server described by cfg, with tracing and,
// when enabled, Prometheus metrics.
func newServer(cfg *config.Config) *server.Server {
	logger := newLogger(cfg, os.Stderr)

	sc := server.DefaultServerConfig()
	sc.Address = cfg.Address()
	sc.CheckOrigin = server.AllowOrigins(cfg.Server.AllowedOrigins...)
	if !cfg.Server.Live {
		sc.Live = nil
	}
	sc.MetricsPath = cfg.Metrics.Path
	sc.Document = server.DocumentConfig{
		Lang:        cfg.Site.Lang,
		Owner:       cfg.Site.Owner,
		Scripts:     cfg.Site.Scripts,
		StyleSheets: cfg.Site.StyleSheets,
	}
	sc.Render = rendererConfig(cfg)
	sc.ShutdownTimeout = cfg.ShutdownTimeout()
	sc.ReadTimeout = cfg.ReadTimeout()
	sc.WriteTimeout = cfg.WriteTimeout()
	sc.OnAddUser = func() {
		logger.Info("add user requested")
	}

	srv := server.New(sc, pages.DefaultRegistry())
	srv.SetLogger(logger)
	srv.Use(middleware.OpenTelemetry())

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(registry),
		)
		srv.SetMetrics(metrics, registry)
	}

	return srv
}
