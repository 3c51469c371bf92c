package logger

import (
	"io"
	"log/slog"
)

// Format is the record encoding
type Format string

const (
	// FormatText writes key=value records
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record
	FormatJSON Format = "json"
)

type config struct {
	level     slog.Level
	output    io.Writer
	format    Format
	component string
}

// Option configures New
type Option func(*config)

// WithLevel sets the minimum level
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the destination writer
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithFormat sets the record encoding
func WithFormat(format Format) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithComponent tags every record with a component attribute
func WithComponent(name string) Option {
	return func(c *config) {
		c.component = name
	}
}

// WithDebug enables debug records
func WithDebug() Option {
	return WithLevel(slog.LevelDebug)
}

// WithQuiet keeps only warnings and errors
func WithQuiet() Option {
	return WithLevel(slog.LevelWarn)
}
