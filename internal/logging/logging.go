// Package logging constructs the zerolog logger shared by every component.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name (debug, info, warn, error). Defaults to info.
	Level string
	// Pretty selects a human-readable console writer instead of JSON.
	Pretty bool
}

// New builds a zerolog.Logger with a timestamp and caller field attached.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var writer = os.Stdout
	var output zerolog.ConsoleWriter
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
		return zerolog.New(output).Level(level).With().Timestamp().Caller().Logger()
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Caller().Logger()
}
