package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the logger described by the log section. The level is
// set on the logger itself, the global level is left alone.
func NewLogger(c LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if c.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
