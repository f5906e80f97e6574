package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger: console output on stderr, level from
// configuration. Unknown levels fall back to info rather than failing
// the run.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
