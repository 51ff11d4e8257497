// Command ppinet-server serves protein network analyses over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/ppinet/pkg/api"
	"github.com/dd0wney/ppinet/pkg/api/middleware"
	"github.com/dd0wney/ppinet/pkg/config"
	"github.com/dd0wney/ppinet/pkg/graphql"
	"github.com/dd0wney/ppinet/pkg/health"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/metrics"
	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/dd0wney/ppinet/pkg/server"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config and PPINET_PORT)")
	flag.Parse()

	// Startup logging before the configured logger exists
	boot := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := loadConfig(*configPath, *port)
	if err != nil {
		boot.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel())
	logging.SetDefaultLogger(logger)

	fetcher, err := cfg.Fetcher()
	if err != nil {
		boot.Error("failed to load interaction sources", "error", err)
		os.Exit(1)
	}
	boot.Info("ppinet server starting",
		"version", version,
		"addr", cfg.Addr(),
		"fixtures", cfg.Data.FixturesPath,
		"data_dir", cfg.Data.DataDir,
		"demo_data", cfg.Data.DemoData,
	)

	registry := metrics.DefaultRegistry()
	layoutKind, layoutConfig := cfg.LayoutOptions()
	analyzer := pipeline.NewAnalyzer(fetcher,
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(registry),
		pipeline.WithOptions(cfg.AlgorithmOptions()),
		pipeline.WithLayout(layoutKind, layoutConfig))

	hc := health.NewHealthChecker(health.WithCheckTimeout(cfg.Server.AnalyzeTimeout))
	for _, source := range interactions.AllSources {
		hc.RegisterCheck("interactions_"+source.String(),
			health.FetcherCheck(fetcher, source, "BRCA1"))
	}
	if cfg.Data.DataDir != "" {
		hc.RegisterReadinessCheck("data_dir", health.DirectoryCheck("data_dir", cfg.Data.DataDir))
	}

	srv, err := api.NewServer(analyzer,
		api.WithLogger(logger),
		api.WithMetrics(registry),
		api.WithHealthChecker(hc),
		api.WithCORS(middleware.ParseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))),
		api.WithGraphQL(graphql.DefaultLimitConfig(), graphql.DefaultMaxDepth),
		api.WithAnalyzeTimeout(cfg.Server.AnalyzeTimeout),
		api.WithVersion(version),
	)
	if err != nil {
		boot.Error("failed to create API server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeouts := server.Timeouts{
		Read:     cfg.Server.ReadTimeout,
		Write:    cfg.Server.WriteTimeout,
		Shutdown: cfg.Server.ShutdownTimeout,
	}

	// SIGHUP re-reads the config file; only the log level is applied live
	reload := func() error {
		next, err := loadConfig(*configPath, *port)
		if err != nil {
			return err
		}
		logger.SetLevel(next.LogLevel())
		return nil
	}

	if err := srv.Start(ctx, cfg.Addr(), timeouts, reload); err != nil {
		boot.Error("server error", "error", err)
		os.Exit(1)
	}
	boot.Info("server exited")
}

func loadConfig(path string, port int) (*config.Config, error) {
	var cfg *config.Config
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
		if err := cfg.ApplyEnv(os.Getenv); err != nil {
			return nil, err
		}
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
