package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvFile is read into the process environment before overrides are applied.
// Variables already set in the environment win.
const EnvFile = ".env"

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")              // Current directory
		v.AddConfigPath("./configs")      // Project configs directory
		v.AddConfigPath("/etc/salescast") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides, e.g. SALESCAST_FORECAST_ALPHA
	v.SetEnvPrefix("SALESCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// loadEnvFile loads path with godotenv; a missing file is not an error
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// Server defaults
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.http_port", d.Server.HTTPPort)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout.String())
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout.String())
	v.SetDefault("server.body_limit", d.Server.BodyLimit)

	// Forecast defaults
	v.SetDefault("forecast.method", d.Forecast.Method)
	v.SetDefault("forecast.alpha", d.Forecast.Alpha)
	v.SetDefault("forecast.test_size", d.Forecast.TestSize)
	v.SetDefault("forecast.window_size", d.Forecast.WindowSize)
	v.SetDefault("forecast.periods", d.Forecast.Periods)

	// Dataset defaults
	v.SetDefault("dataset.input_path", d.Dataset.InputPath)
	v.SetDefault("dataset.date_column", d.Dataset.DateColumn)
	v.SetDefault("dataset.value_column", d.Dataset.ValueColumn)
	v.SetDefault("dataset.frequency", d.Dataset.Frequency)
	v.SetDefault("dataset.fill_method", d.Dataset.FillMethod)
	v.SetDefault("dataset.drop_duplicates", d.Dataset.DropDuplicates)

	// Report defaults
	v.SetDefault("report.output_dir", d.Report.OutputDir)
	v.SetDefault("report.filename", d.Report.Filename)

	// Queue defaults
	v.SetDefault("queue.enabled", d.Queue.Enabled)
	v.SetDefault("queue.type", d.Queue.Type)
	v.SetDefault("queue.url", d.Queue.URL)
	v.SetDefault("queue.username", "")
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.subject", d.Queue.Subject)
	v.SetDefault("queue.compression", d.Queue.Compression)
	v.SetDefault("queue.redis_db", 0)
	v.SetDefault("queue.redis_stream", "salescast")
	v.SetDefault("queue.redis_group", "salescast-group")
	v.SetDefault("queue.kafka_brokers", []string{"localhost:9092"})
	v.SetDefault("queue.kafka_group_id", "salescast")

	// Auth defaults
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.api_keys", []string{})

	// Logging defaults
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
	v.SetDefault("logging.time_format", d.Logging.TimeFormat)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			HTTPPort:     5555,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			BodyLimit:    4 * 1024 * 1024,
		},
		Forecast: ForecastConfig{
			Method:     "exponential",
			Alpha:      0.3,
			TestSize:   0.2,
			WindowSize: 7,
			Periods:    12,
		},
		Dataset: DatasetConfig{
			InputPath:      "data/sales_data.csv",
			DateColumn:     "date",
			ValueColumn:    "sales",
			FillMethod:     "mean",
			DropDuplicates: true,
		},
		Report: ReportConfig{
			OutputDir: "reports",
			Filename:  "report.txt",
		},
		Queue: QueueConfig{
			Type:        "memory",
			URL:         "nats://localhost:4222",
			Subject:     "salescast.forecasts",
			Compression: "snappy",
			RedisStream: "salescast",
			RedisGroup:  "salescast-group",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			TimeFormat: "RFC3339",
		},
	}
}
