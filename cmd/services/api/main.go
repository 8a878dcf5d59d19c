package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/soltixdb/salescast/internal/compression"
	"github.com/soltixdb/salescast/internal/config"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/metrics"
	"github.com/soltixdb/salescast/internal/queue"
	"github.com/soltixdb/salescast/internal/router"
	"github.com/soltixdb/salescast/internal/services"
	"github.com/soltixdb/salescast/internal/utils"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("API service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Forecast events are optional; a disabled queue gets a no-op publisher
	publisher, err := queue.NewPublisher(cfg.Queue)
	if err != nil {
		logger.Fatal("Failed to connect to Queue", "error", err)
	}
	defer func() { _ = publisher.Close() }()
	if cfg.Queue.Enabled {
		logger.Info("Publishing forecast events", "type", cfg.Queue.Type, "subject", cfg.Queue.Subject)
	}

	compressor, err := compression.ByName(cfg.Queue.Compression)
	if err != nil {
		logger.Fatal("Invalid queue compression", "error", err)
	}

	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	recorder := metrics.New()
	forecastService := services.NewForecastService(logger,
		services.WithPublisher(publisher, cfg.Queue.Subject, compressor),
		services.WithMetrics(recorder))

	app := router.New(logger, forecastService, recorder, *cfg)

	go func() {
		addr := cfg.GetServerAddress()
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), utils.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
