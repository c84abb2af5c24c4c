package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the run-scoped logger that gets threaded through every
// component. No package-level state: callers own the sink.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(cw).With().Timestamp().Logger()
}

// Nop is handy for tests that don't assert on log output.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
