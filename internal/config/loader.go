// Package config provides configuration management for the report generator.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified YAML file and environment variables.
// An empty configPath loads defaults and environment variables only.
// Environment variables take precedence over file values.
// Environment variable format: REPORTGEN_<SECTION>_<KEY> (e.g., REPORTGEN_REPORT_ROOT_DIR)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults first
	setDefaults(v)

	// Configure environment variable binding
	v.SetEnvPrefix("REPORTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	// Report defaults
	v.SetDefault("report.root_dir", ".")
	v.SetDefault("report.default_format", "application/json")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Input defaults
	v.SetDefault("input.timeout", 30*time.Second)
	v.SetDefault("input.retry.max_retries", 3)
	v.SetDefault("input.retry.base_delay", 1*time.Second)

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)
}
