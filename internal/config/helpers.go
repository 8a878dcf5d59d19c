package config

import (
	"fmt"
	"path/filepath"
)

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Logging.Level == "info" && c.Logging.Format == "json"
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// GetReportPath returns the full path of the report file
func (c *Config) GetReportPath() string {
	return filepath.Join(c.Report.OutputDir, c.Report.Filename)
}

// CLILogging returns the logging section with stdout output moved to stderr, so
// log lines never mix with results a command prints. File outputs are kept.
func (c *Config) CLILogging() LoggingConfig {
	cfg := c.Logging
	if cfg.OutputPath == "" || cfg.OutputPath == "stdout" {
		cfg.OutputPath = "stderr"
	}
	return cfg
}
