// Package logger provides a zerolog wrapper for the hook process.
//
// Hook invocations must never write diagnostics to the pusher's terminal, so
// the default sink is an append-only log file; when that file cannot be
// opened the logger degrades to a discard sink rather than failing the push.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"refgate/internal/platform/config/raw"

	"github.com/rs/zerolog"
)

// Options configures the root logger
type Options struct {
	Level     string
	Format    string // "json" (default, file sink) or "console" (admin CLI)
	Component string
	FilePath  string    // append-only sink; empty falls back to Writer/stderr
	Writer    io.Writer // explicit override, used by tests and the CLI
}

// FromEnv builds Options from the REFGATE_LOG_ namespace using the
// logging-free raw reader (no import cycle with config)
func FromEnv() Options {
	rc := raw.New().Prefix("REFGATE_LOG_")
	return Options{
		Level:    strings.ToLower(rc.Get("LEVEL", "info")),
		Format:   strings.ToLower(rc.Get("FORMAT", "json")),
		FilePath: rc.Get("FILE", ""),
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Get returns the process-wide root logger as a pointer
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init configures zerolog and builds the root logger, safe to call once
func Init(opt Options) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := sink(opt)
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		ctx := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		if opt.Component != "" {
			ctx = ctx.Str("component", opt.Component)
		}

		log := ctx.Logger()
		root.Store(&log)
		inited.Store(true)
	})
}

// sink picks the destination writer. An unopenable log file degrades to
// io.Discard: log availability is operational, not policy-correctness
func sink(opt Options) io.Writer {
	if opt.Writer != nil {
		return opt.Writer
	}
	if opt.FilePath == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(opt.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

type ctxKey struct{}

// WithCorrelation stashes the per-invocation correlation id on ctx.
// Every hook run gets exactly one id; it ties the user-facing internal-error
// line to the full server-side detail
func WithCorrelation(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// CorrelationFrom returns the correlation id on ctx, or ""
func CorrelationFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// C returns a child logger enriched with the ctx correlation id
func C(ctx context.Context) *Logger {
	l := Get()
	id := CorrelationFrom(ctx)
	if id == "" {
		return l
	}
	ll := l.With().Str("correlation_id", id).Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
