// Package logger initializes the zerolog logger from configuration.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/huffzip/huffzip/internal/config"
	"github.com/rs/zerolog"
)

// New returns a logger configured by logger.level and logger.prettier.
func New(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	if cfg.Bool("logger.prettier", true) {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(cfg.String("logger.level", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
