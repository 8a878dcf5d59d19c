package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/soltixdb/salescast/internal/compression"
	"github.com/soltixdb/salescast/internal/config"
	"github.com/soltixdb/salescast/internal/logging"
	"github.com/soltixdb/salescast/internal/queue"
	"github.com/soltixdb/salescast/internal/services"
)

// Prints forecast events from the configured queue as JSON lines until interrupted
func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	subject := flag.String("subject", "", "Subject to read (default: queue.subject from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *subject == "" {
		*subject = cfg.Queue.Subject
	}

	logger, err := logging.NewFromConfig(cfg.CLILogging())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	compressor, err := compression.ByName(cfg.Queue.Compression)
	if err != nil {
		logger.Fatal("Invalid queue compression", "error", err)
	}

	q, err := queue.NewQueue(cfg.Queue)
	if err != nil {
		logger.Fatal("Failed to connect to Queue", "type", cfg.Queue.Type, "error", err)
	}
	defer func() { _ = q.Close() }()

	enc := json.NewEncoder(os.Stdout)
	consumer := services.NewEventConsumer(logger, q, *subject, compressor)
	if err := consumer.Start(func(event *services.ForecastEvent) error {
		return enc.Encode(event)
	}); err != nil {
		logger.Fatal("Failed to start consumer", "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := consumer.Stop(); err != nil {
		logger.Warn("Failed to unsubscribe", "error", err)
	}
}
