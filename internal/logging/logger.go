// Package logging configures the process-wide slog logger and carries
// request-scoped attributes through context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "request_id"
	ProjectIDKey ctxKey = "project_id"
)

// Options mirrors the log section of the client config.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger without touching the default.
func New(opts Options) *slog.Logger {
	w := opts.Output
	if w == nil {
		// stdout belongs to command output and the TUI.
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}
	return slog.New(handler)
}

// Init installs a logger built from opts as the slog default.
func Init(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	return logger
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func WithProjectID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ProjectIDKey, id)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// FromContext returns the default logger annotated with any request-scoped
// values found in ctx.
func FromContext(ctx context.Context) *slog.Logger {
	return Scoped(ctx, slog.Default())
}

// Scoped annotates logger with the request-scoped values in ctx.
func Scoped(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if ctx == nil {
		return logger
	}
	if id := RequestID(ctx); id != "" {
		logger = logger.With(string(RequestIDKey), id)
	}
	if id, ok := ctx.Value(ProjectIDKey).(int64); ok && id != 0 {
		logger = logger.With(string(ProjectIDKey), id)
	}
	return logger
}
