/*package logctx carries a zerolog.Logger through a context.Context, so that
fields attached near the top of a call (e.g. the file being converted) show up
on every line logged below it.*/
package logctx

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

var (
	defaultLogger zerolog.Logger
	defaultOnce sync.Once
)

// DefaultLogger returns the logger used when a context doesn't carry one. It
// writes JSON to stderr.
func DefaultLogger() zerolog.Logger {
	defaultOnce.Do(func() {
		defaultLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
	return defaultLogger
}

// SetDefaultLogger replaces the default logger. It should only be called
// from main, before any other goroutines start logging.
func SetDefaultLogger(l zerolog.Logger) {
	DefaultLogger()
	defaultLogger = l
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	if ctx == nil { ctx = context.Background() }
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger carried by ctx, or DefaultLogger() if there
// isn't one.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok { return l }
	}
	return DefaultLogger()
}

// WithStr returns a copy of ctx whose logger has an extra string field.
func WithStr(ctx context.Context, key, value string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With().Str(key, value).Logger())
}

// NewConfiguredLogger creates a logger at Info level, or Debug level if
// debug is set. If human is set, output goes through zerolog's console
// writer instead of being written as JSON.
func NewConfiguredLogger(debug, human bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug { level = zerolog.DebugLevel }

	var l zerolog.Logger
	if human {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out: os.Stderr, TimeFormat: time.RFC3339,
		})
	} else {
		l = zerolog.New(os.Stderr)
	}
	return l.Level(level).With().Timestamp().Logger()
}
