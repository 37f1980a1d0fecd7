package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/infra/shutdown"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/server/httpserver"
	"github.com/yndnr/respkv/internal/server/respserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func run(c *cli.Context) error {
	configFile := c.String("config")
	overrides := flagOverrides(c)

	// Load configuration
	cfg, err := loadConfig(configFile, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting respkv-server", append(buildinfo.Fields(), "config", configFile)...)
	log.Info("configuration loaded", config.Summary(cfg)...)

	store := memory.New(memory.WithShardCount(cfg.Storage.ShardCount))

	metrics := metric.NewRegistry()
	if err := metrics.Register(metric.NewCollector(store)); err != nil {
		return fmt.Errorf("register store metrics: %w", err)
	}

	respServer := respserver.New(respConfig(cfg), store,
		respserver.WithLogger(log.With("component", "resp")),
		respserver.WithMetrics(metrics),
	)

	// Setup graceful shutdown
	shutdownHandler := shutdown.NewHandler(shutdownTimeout)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Start RESP server in goroutine
	go func() {
		log.Info("RESP server listening", "addr", cfg.Server.RESP.Addr)
		if err := respServer.ListenAndServe(ctx); err != nil && !errors.Is(err, respserver.ErrServerClosed) {
			log.Error("RESP server error", "error", err)
			shutdownHandler.Trigger()
		}
	}()

	// Register shutdown hooks (reverse order of startup)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down RESP server", "active_conns", respServer.ActiveConns())
		return respServer.Shutdown(ctx)
	})

	if cfg.Server.Admin.Enabled {
		adminServer := httpserver.New(cfg.Server.Admin.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
			Store:   store,
			Metrics: metrics,
			Logger:  log.With("component", "admin"),
		}))

		go func() {
			log.Info("admin server listening", "addr", cfg.Server.Admin.Addr)
			if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("admin server error", "error", err)
				shutdownHandler.Trigger()
			}
		}()

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down admin server")
			return adminServer.Shutdown(ctx)
		})
	}

	if configFile != "" {
		stop, err := watchConfig(configFile, overrides, log)
		if err != nil {
			logger.Warn("config watch disabled", "error", err)
		} else {
			logger.Debug("config watch enabled", "path", configFile)
			shutdownHandler.OnShutdown(func(context.Context) error { return stop() })
		}
	}

	// Wait for shutdown signal
	logger.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped gracefully", "keys", store.Len())
	return nil
}

// loadConfig loads configuration from file, environment and flag overrides.
func loadConfig(configFile string, overrides map[string]any) (*config.ServerConfig, error) {
	// Start with defaults
	cfg := config.Default()

	opts := []confloader.Option{confloader.WithOverrides(overrides)}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger builds the process logger and installs it as the default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
		File: logger.FileConfig{
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

func respConfig(cfg *config.ServerConfig) respserver.Config {
	rc := cfg.Server.RESP
	return respserver.Config{
		Addr:         rc.Addr,
		MaxClients:   rc.MaxClients,
		IdleTimeout:  rc.IdleTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
		RateLimit:    rc.RateLimit,
		MaxBulkLen:   rc.MaxBulkLen,
		MaxArrayLen:  rc.MaxArrayLen,
	}
}

// watchConfig reloads configFile on change and applies the new log level.
// Other settings need a restart.
func watchConfig(configFile string, overrides map[string]any, log logger.Logger) (func() error, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(configFile); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(path string) {
		applyReload(path, overrides, log)
	})
	w.StartAsync()
	return w.Stop, nil
}

func applyReload(path string, overrides map[string]any, log logger.Logger) {
	cfg, err := loadConfig(path, overrides)
	if err != nil {
		log.Warn("config reload rejected", "path", path, "error", err)
		return
	}
	prev := logger.GetLevel()
	logger.SetLevel(cfg.Log.Level)
	if now := logger.GetLevel(); now != prev {
		log.Info("log level changed", "from", prev, "to", now)
	}
}
