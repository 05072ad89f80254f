package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls log level and output format.
type Config struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// New creates a zerolog logger writing to stdout.
func New(cfg Config, service string) *zerolog.Logger {
	return NewWithWriter(cfg, service, os.Stdout)
}

// NewWithWriter creates a zerolog logger writing to w. Format "console" enables
// human readable output; anything else is JSON.
func NewWithWriter(cfg Config, service string, w io.Writer) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	return &logger
}
