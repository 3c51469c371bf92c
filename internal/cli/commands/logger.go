package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aki/keybit/internal/core/config"
	"github.com/aki/keybit/internal/core/logger"
)

// Global flags for logging configuration
var (
	flagLogLevel  string
	flagLogFormat string
)

// RegisterLoggerFlags registers global logging flags
func RegisterLoggerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json); overrides the config file")
}

// CreateLogger creates a logger from the CLI flags, falling back to the
// configuration. Logs always go to stderr.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	levelName, formatName := flagLogLevel, flagLogFormat
	if cfg != nil {
		if levelName == "" {
			levelName = cfg.Log.Level
		}
		if formatName == "" {
			formatName = cfg.Log.Format
		}
	}

	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(os.Stderr),
	), nil
}
