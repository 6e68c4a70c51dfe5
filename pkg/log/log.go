// Package log provides the Logger interface used throughout the
// module, backed by zerolog's structured event builder.
package log

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the minimal logging surface components depend on. Kept as
// an interface so tests can substitute Null().
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type logger struct {
	zl zerolog.Logger
}

// New returns a Logger that writes human-readable, colour-coded lines
// to stderr, tagged with the given component name.
func New(component string) Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Str("component", component).Logger()
	return &logger{zl: zl}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}
