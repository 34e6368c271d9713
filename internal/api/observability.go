package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/workhub/internal/logging"
)

// CallEvent records metadata about a single backend call.
type CallEvent struct {
	Method    string
	Path      string
	RequestID string
	Status    int
	Duration  time.Duration
	ErrorCode string
}

// CallObserver receives events about backend calls for logging.
type CallObserver interface {
	OnCallComplete(ctx context.Context, event CallEvent)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, CallEvent) {}

// LogObserver writes call events to a slog logger at debug level, and at
// warn level when the call failed.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(ctx context.Context, event CallEvent) {
	attrs := []any{
		"method", event.Method,
		"path", event.Path,
		"status", event.Status,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.ErrorCode != "" {
		attrs = append(attrs, "error_code", event.ErrorCode)
		logging.Scoped(ctx, o.logger).WarnContext(ctx, "api_call", attrs...)
		return
	}
	logging.Scoped(ctx, o.logger).DebugContext(ctx, "api_call", attrs...)
}
