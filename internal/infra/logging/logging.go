package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. It writes JSON to stdout until Init is called.
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init rebuilds Log for the given mode. Debug mode lowers the level and
// switches to human-readable console output.
func Init(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Logger()

	if debug {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	Log = logger
	return logger
}
