package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger.
// format is "json" or "console"; anything else falls back to console.
func Setup(level, format string) error {
	return setup(os.Stderr, level, format)
}

func setup(w io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	return nil
}
