// Package config provides configuration management for the report generator.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Report  ReportConfig  `mapstructure:"report"`
	Logging LoggingConfig `mapstructure:"logging"`
	Input   InputConfig   `mapstructure:"input"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// ReportConfig contains configurations for report generation.
type ReportConfig struct {
	// RootDir is the base directory all reports are written below.
	RootDir string `mapstructure:"root_dir" validate:"required"`
	// DefaultFormat is used when no format is given on the command line.
	DefaultFormat string `mapstructure:"default_format" validate:"required,media_type"`
}

// LoggingConfig contains configurations for logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// InputConfig contains configurations for loading report input over HTTP.
type InputConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   RetryConfig   `mapstructure:"retry"`
}

// RetryConfig defines retry behavior for HTTP requests.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
}

// BatchConfig contains configurations for batch generation.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=64"`
}
