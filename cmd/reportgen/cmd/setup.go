// Package cmd implements CLI commands for the report generator.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"reportgen/internal/config"
)

// loadConfigAndLogger loads the configuration and builds the logger.
// It exits the process if the configuration cannot be loaded.
func loadConfigAndLogger() (*config.Config, zerolog.Logger) {
	configPath := GetConfigFile()

	cfg, err := config.Load(configPath)
	if err != nil {
		// Use temporary console logger for config loading errors
		tmpLogger := setupLogger("error", "console")
		tmpLogger.Error().Err(err).Str("path", configPath).Msg("failed to load config")
		fmt.Fprintf(os.Stderr, "❌ 加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// Command line --log-level overrides config file setting
	level := cfg.Logging.Level
	if GetLogLevel() != "" {
		level = GetLogLevel()
	}

	logger := setupLogger(level, cfg.Logging.Format)
	logger.Debug().
		Str("config_path", configPath).
		Str("log_level", level).
		Str("log_format", cfg.Logging.Format).
		Str("root_dir", cfg.Report.RootDir).
		Msg("configuration loaded successfully")

	return cfg, logger
}

// setupLogger creates a zerolog logger with the specified level and format.
// Logs always go to stderr so stdout only carries report paths.
func setupLogger(level string, format string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var output io.Writer
	if format == "json" {
		// JSON format - structured logging for log aggregation systems
		output = os.Stderr
	} else {
		// Console format - human-readable output for development
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// resolveRootDir determines the report root directory.
// Command line flags take precedence over config file.
func resolveRootDir(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Report.RootDir
}
