// Package logging provides structured logging for the pipeline diagnostics.
// The planner's answer goes to stdout; everything here goes to stderr.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger defines the interface for structured logging
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

type logger struct {
	zl zerolog.Logger
}

// New creates a console logger. With verbose false only warnings and errors
// are emitted, keeping stdout/stderr quiet around the rendered plan.
func New(verbose bool) Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &logger{zl: zl}
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &logger{zl: zerolog.Nop()}
}

func (l *logger) Debug(msg string, fields ...interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *logger) Info(msg string, fields ...interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *logger) Warn(msg string, fields ...interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *logger) Error(msg string, fields ...interface{}) {
	l.zl.Error().Fields(fields).Msg(msg)
}

func (l *logger) With(fields ...interface{}) Logger {
	return &logger{zl: l.zl.With().Fields(fields).Logger()}
}
