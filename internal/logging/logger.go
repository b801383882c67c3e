// Package logging provides the structured logger shared by the engines, the
// HTTP server and the command-line front end. The default backend is zerolog;
// an adapter over the standard library logger is kept for tests and for
// embedding ratcalc in programs that already use log.Logger.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used across the application.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	Printf(format string, args ...any)
	Println(args ...any)
}

// Field is a key-value pair attached to a log event.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an integer field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Bool creates a boolean field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Stringer creates a field from any value with a String method, such as a
// rational.Rat. The value is formatted lazily by the backend.
func Stringer(key string, value fmt.Stringer) Field { return Field{Key: key, Value: value} }

// Err creates an error field.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a Logger backed by zerolog.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger writes JSON events for component to stderr. It is the
// logger of long-running modes such as the HTTP server.
func NewDefaultLogger(component string) *ZerologAdapter {
	return NewLogger(os.Stderr, component)
}

// NewLogger creates a Logger writing to w, tagging every event with the
// given component name.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	return NewZerologAdapter(
		zerolog.New(w).With().Str("component", component).Timestamp().Logger(),
	)
}

// SetGlobalLevel sets the minimum level for every zerolog logger, including
// the package-level one used by the engines.
func SetGlobalLevel(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func (z *ZerologAdapter) applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case time.Duration:
			event = event.Dur(f.Key, v)
		case error:
			event = event.Err(v)
		case fmt.Stringer:
			event = event.Stringer(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

// Info logs an informational message.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	z.applyFields(z.logger.Info(), fields).Msg(msg)
}

// Error logs an error message.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	z.applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs a debug message.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	z.applyFields(z.logger.Debug(), fields).Msg(msg)
}

// Printf logs at info level.
func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

// Println logs at info level.
func (z *ZerologAdapter) Println(args ...any) {
	z.logger.Info().Msg(fmt.Sprint(args...))
}

// StdLoggerAdapter adapts a standard log.Logger to the Logger interface.
type StdLoggerAdapter struct {
	logger *stdlog.Logger
}

// NewStdLoggerAdapter creates a Logger backed by a standard log.Logger.
func NewStdLoggerAdapter(logger *stdlog.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

func (s *StdLoggerAdapter) emit(level, msg string, err error, fields []Field) {
	line := "[" + level + "] " + msg
	if err != nil {
		line += ": " + err.Error()
	}
	for _, f := range fields {
		line += fmt.Sprintf(" %s=%v", f.Key, f.Value)
	}
	s.logger.Println(line)
}

// Info logs an informational message.
func (s *StdLoggerAdapter) Info(msg string, fields ...Field) { s.emit("INFO", msg, nil, fields) }

// Error logs an error message.
func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.emit("ERROR", msg, err, fields)
}

// Debug logs a debug message.
func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) { s.emit("DEBUG", msg, nil, fields) }

// Printf forwards to the wrapped logger.
func (s *StdLoggerAdapter) Printf(format string, args ...any) { s.logger.Printf(format, args...) }

// Println forwards to the wrapped logger.
func (s *StdLoggerAdapter) Println(args ...any) { s.logger.Println(args...) }
