package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "default config should be valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid http port",
			mutate:  func(c *Config) { c.Server.HTTPPort = 0 },
			wantErr: true,
		},
		{
			name:    "unknown forecast method",
			mutate:  func(c *Config) { c.Forecast.Method = "prophet" },
			wantErr: true,
		},
		{
			name:    "alpha out of range",
			mutate:  func(c *Config) { c.Forecast.Alpha = 1.5 },
			wantErr: true,
		},
		{
			name:    "alpha of one is allowed",
			mutate:  func(c *Config) { c.Forecast.Alpha = 1 },
			wantErr: false,
		},
		{
			name:    "test size of one",
			mutate:  func(c *Config) { c.Forecast.TestSize = 1 },
			wantErr: true,
		},
		{
			name:    "zero periods",
			mutate:  func(c *Config) { c.Forecast.Periods = 0 },
			wantErr: true,
		},
		{
			name:    "invalid frequency",
			mutate:  func(c *Config) { c.Dataset.Frequency = "Q" },
			wantErr: true,
		},
		{
			name: "frequency without date column",
			mutate: func(c *Config) {
				c.Dataset.Frequency = "W"
				c.Dataset.DateColumn = ""
			},
			wantErr: true,
		},
		{
			name:    "invalid fill method",
			mutate:  func(c *Config) { c.Dataset.FillMethod = "median" },
			wantErr: true,
		},
		{
			name: "enabled queue with unknown type",
			mutate: func(c *Config) {
				c.Queue.Enabled = true
				c.Queue.Type = "rabbitmq"
			},
			wantErr: true,
		},
		{
			name: "enabled queue without subject",
			mutate: func(c *Config) {
				c.Queue.Enabled = true
				c.Queue.Subject = ""
			},
			wantErr: true,
		},
		{
			name: "disabled queue is not checked",
			mutate: func(c *Config) {
				c.Queue.Type = "rabbitmq"
			},
			wantErr: false,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "invalid" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.HTTPPort != 5555 {
		t.Errorf("expected HTTPPort 5555, got %d", cfg.Server.HTTPPort)
	}

	if cfg.Forecast.Alpha != 0.3 || cfg.Forecast.TestSize != 0.2 || cfg.Forecast.WindowSize != 7 ||
		cfg.Forecast.Periods != 12 {
		t.Errorf("unexpected forecast defaults: %+v", cfg.Forecast)
	}

	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected ReadTimeout 30s, got %v", cfg.Server.ReadTimeout)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  http_port: 8080
  read_timeout: 5s
forecast:
  method: sma
  window_size: 3
  periods: 12
dataset:
  frequency: W
queue:
  enabled: true
  type: nats
  subject: test.forecasts
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected read timeout 5s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Forecast.Method != "sma" || cfg.Forecast.WindowSize != 3 || cfg.Forecast.Periods != 12 {
		t.Errorf("unexpected forecast section: %+v", cfg.Forecast)
	}
	// Unset keys keep their defaults
	if cfg.Forecast.Alpha != 0.3 {
		t.Errorf("expected default alpha 0.3, got %v", cfg.Forecast.Alpha)
	}
	if cfg.Dataset.DateColumn != "date" || cfg.Dataset.Frequency != "W" {
		t.Errorf("unexpected dataset section: %+v", cfg.Dataset)
	}
	if !cfg.Queue.Enabled || cfg.Queue.Subject != "test.forecasts" {
		t.Errorf("unexpected queue section: %+v", cfg.Queue)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("forecast:\n  alpha: 0.4\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SALESCAST_FORECAST_ALPHA", "0.9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Forecast.Alpha != 0.9 {
		t.Errorf("expected env override 0.9, got %v", cfg.Forecast.Alpha)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("SALESCAST_FORECAST_PERIODS") })

	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte("SALESCAST_FORECAST_PERIODS=14\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Forecast.Periods != 14 {
		t.Errorf("expected periods 14 from %s, got %d", EnvFile, cfg.Forecast.Periods)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("forecast:\n  alpha: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for explicit missing file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg.Server.HTTPPort != 5555 {
		t.Errorf("expected default config, got port %d", cfg.Server.HTTPPort)
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.IsProduction() {
		t.Error("default config should be production mode")
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"

	if !cfg.IsDevelopment() {
		t.Error("config with debug/console should be development mode")
	}

	if addr := cfg.GetServerAddress(); addr != "0.0.0.0:5555" {
		t.Errorf("expected '0.0.0.0:5555', got %s", addr)
	}

	if p := cfg.GetReportPath(); p != filepath.Join("reports", "report.txt") {
		t.Errorf("unexpected report path %s", p)
	}
}

func TestCLILogging(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"stdout", "stderr"},
		{"", "stderr"},
		{"stderr", "stderr"},
		{"/var/log/salescast.log", "/var/log/salescast.log"},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Logging.OutputPath = tt.output
		if got := cfg.CLILogging().OutputPath; got != tt.want {
			t.Errorf("CLILogging() with output %q = %q, want %q", tt.output, got, tt.want)
		}
		if cfg.Logging.OutputPath != tt.output {
			t.Errorf("CLILogging() modified the config: %q", cfg.Logging.OutputPath)
		}
	}
}
