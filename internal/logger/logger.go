// Package logger provides configured zerolog loggers for the admin tools.
package logger

import (
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// New returns a JSON logger writing to w (stdout when nil) tagged with service.
// Call sites should use .Stack() on error events to include stacks.
func New(service string, w io.Writer, level zerolog.Level) zerolog.Logger {
	configureErrorMarshaling()
	if w == nil {
		w = os.Stdout
	}
	return zerolog.New(w).Level(level).With().
		Str("service", service).
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger for interactive CLI use.
func NewConsole(w io.Writer, level zerolog.Level) zerolog.Logger {
	configureErrorMarshaling()
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}).Level(level).With().Timestamp().Logger()
}

// configureErrorMarshaling makes zerolog render github.com/pkg/errors stacks,
// attaching one to plain errors when .Stack() is used.
func configureErrorMarshaling() {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
}
