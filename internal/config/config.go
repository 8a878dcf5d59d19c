package config

import (
	"fmt"
	"time"

	"github.com/soltixdb/salescast/internal/analytics/forecast"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Report   ReportConfig   `mapstructure:"report"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort     int           `mapstructure:"http_port"` // HTTP server port
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	BodyLimit    int           `mapstructure:"body_limit"` // Max request body in bytes
}

// ForecastConfig holds default model parameters
type ForecastConfig struct {
	Method     string  `mapstructure:"method"`      // exponential, sma, linear
	Alpha      float64 `mapstructure:"alpha"`       // Smoothing factor in (0,1]
	TestSize   float64 `mapstructure:"test_size"`   // Held-out fraction in [0,1)
	WindowSize int     `mapstructure:"window_size"` // Moving average window
	Periods    int     `mapstructure:"periods"`     // Forecast horizon
}

// DatasetConfig controls how input files are cleaned and aggregated
type DatasetConfig struct {
	InputPath      string `mapstructure:"input_path"`
	DateColumn     string `mapstructure:"date_column"`
	ValueColumn    string `mapstructure:"value_column"`
	Frequency      string `mapstructure:"frequency"`   // D, W, M; empty disables aggregation
	FillMethod     string `mapstructure:"fill_method"` // mean, forward_fill, none
	DropDuplicates bool   `mapstructure:"drop_duplicates"`
}

// ReportConfig controls where reports are written
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Filename  string `mapstructure:"filename"`
}

// QueueConfig represents message queue configuration for forecast events
type QueueConfig struct {
	Enabled     bool   `mapstructure:"enabled"`     // Publish forecast events
	Type        string `mapstructure:"type"`        // Queue type: nats, redis, kafka, memory (default)
	URL         string `mapstructure:"url"`         // Queue server URL (e.g., nats://localhost:4222, redis://localhost:6379)
	Username    string `mapstructure:"username"`    // Optional authentication
	Password    string `mapstructure:"password"`    // Optional authentication
	Subject     string `mapstructure:"subject"`     // Subject/topic for forecast events
	Compression string `mapstructure:"compression"` // snappy, none

	// Redis-specific options
	RedisDB     int    `mapstructure:"redis_db"`     // Redis database number (default: 0)
	RedisStream string `mapstructure:"redis_stream"` // Redis stream prefix (default: "salescast")
	RedisGroup  string `mapstructure:"redis_group"`  // Redis consumer group (default: "salescast-group")

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"`  // Kafka broker addresses
	KafkaGroupID string   `mapstructure:"kafka_group_id"` // Kafka consumer group ID
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, UnixMs, etc
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast config: %w", err)
	}

	if err := c.Dataset.Validate(); err != nil {
		return fmt.Errorf("dataset config: %w", err)
	}

	if err := c.Queue.Validate(); err != nil {
		return fmt.Errorf("queue config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	if c.BodyLimit < 0 {
		return fmt.Errorf("body_limit cannot be negative")
	}

	return nil
}

// Validate validates forecast configuration
func (c *ForecastConfig) Validate() error {
	if !forecast.IsRegistered(c.Method) {
		return fmt.Errorf("forecast.method must be one of: %v", forecast.ListModels())
	}

	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("forecast.alpha must be in (0,1]")
	}

	if c.TestSize < 0 || c.TestSize >= 1 {
		return fmt.Errorf("forecast.test_size must be in [0,1)")
	}

	if c.WindowSize < 1 {
		return fmt.Errorf("forecast.window_size must be at least 1")
	}

	if c.Periods < 1 {
		return fmt.Errorf("forecast.periods must be at least 1")
	}

	return nil
}

// ModelConfig converts the section to model parameters
func (c *ForecastConfig) ModelConfig() forecast.Config {
	return forecast.Config{
		Alpha:      c.Alpha,
		TestSize:   c.TestSize,
		WindowSize: c.WindowSize,
	}
}

// Validate validates dataset configuration
func (c *DatasetConfig) Validate() error {
	switch c.Frequency {
	case "", "D", "W", "M":
	default:
		return fmt.Errorf("dataset.frequency must be one of: D, W, M")
	}

	switch c.FillMethod {
	case "", "mean", "forward_fill", "none":
	default:
		return fmt.Errorf("dataset.fill_method must be one of: mean, forward_fill, none")
	}

	if c.Frequency != "" && c.DateColumn == "" {
		return fmt.Errorf("dataset.date_column is required when frequency is set")
	}

	return nil
}

// Validate validates queue configuration
func (c *QueueConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	switch c.Type {
	case "", "nats", "redis", "kafka", "memory":
	default:
		return fmt.Errorf("queue.type must be one of: nats, redis, kafka, memory")
	}

	if c.Subject == "" {
		return fmt.Errorf("queue.subject is required")
	}

	if c.Compression != "" && c.Compression != "snappy" && c.Compression != "none" {
		return fmt.Errorf("queue.compression must be 'snappy' or 'none'")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
