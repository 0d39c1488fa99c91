// Package logger owns the process-wide zerolog logger of the Jobly API and
// the request-scoped loggers derived from it.
//
// Init builds the root logger once at startup. Request handling code carries
// a child logger in the request context (WithContext) and reads it back with
// FromContext, which falls back to the root logger.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum level name understood by zerolog ("debug",
	// "info", ...). "warning" is accepted as an alias of "warn". Empty or
	// unknown names fall back to info.
	Level string
	// Pretty switches to zerolog's console writer. Leave it off wherever
	// logs are shipped as JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is attached to every entry as "service".
	Service string
}

var (
	mu   sync.RWMutex
	root *zerolog.Logger
)

// Init builds the root logger. Only the first call has an effect; later
// calls return the logger built by the first one.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return *root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	c := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		c = c.Str("service", opts.Service)
	}
	l := c.Logger()
	root = &l
	return l
}

// Get returns the root logger. It panics when Init has not run, which only
// happens through a wiring mistake.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if root == nil {
		panic("logger: Get() called before Init()")
	}
	return *root
}

// Reset forgets the root logger so tests can call Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = nil
}

// WithContext stores l in ctx for code further down the request.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext returns the logger stored by WithContext, the root logger when
// there is none, and a no-op logger before Init.
func FromContext(ctx context.Context) zerolog.Logger {
	mu.RLock()
	fallback := zerolog.Nop()
	if root != nil {
		fallback = *root
	}
	mu.RUnlock()
	return FromContextOr(ctx, fallback)
}

// FromContextOr is FromContext with an explicit fallback.
func FromContextOr(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return fallback
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
