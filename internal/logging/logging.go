package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Setup initializes a zerolog.Logger based on the requested format.
// format can be "text" (human-friendly console) or "json" (structured).
func Setup(format string) zerolog.Logger {
	return New(os.Stderr, format)
}

// New builds the same logger as Setup on an arbitrary writer.
func New(w io.Writer, format string) zerolog.Logger {
	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// ForRun tags log with the stage name and a fresh run id, and returns both.
func ForRun(log zerolog.Logger, stage string) (zerolog.Logger, string) {
	runID := uuid.NewString()
	return log.With().Str("stage", stage).Str("run_id", runID).Logger(), runID
}
