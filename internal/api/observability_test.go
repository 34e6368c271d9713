package api

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/workhub/internal/logging"
)

func TestLogObserver_LevelsByOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	obs := NewLogObserver(logger)

	obs.OnCallComplete(context.Background(), CallEvent{Method: "GET", Path: "/companies", Status: 200, Duration: time.Millisecond})
	assert.Empty(t, buf.String(), "successful calls log at debug")

	obs.OnCallComplete(context.Background(), CallEvent{Method: "PUT", Path: "/projects/1/nodes/order", ErrorCode: "TIMEOUT"})
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "error_code=TIMEOUT")
	assert.Contains(t, out, "path=/projects/1/nodes/order")
}

func TestLogObserver_IncludesScopedAttrs(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	ctx := logging.WithProjectID(logging.WithRequestID(context.Background(), "req-9"), 4)
	obs.OnCallComplete(ctx, CallEvent{Method: "PUT", Path: "/projects/4/nodes/order", ErrorCode: "HTTP_500"})

	out := buf.String()
	assert.Contains(t, out, "request_id=req-9")
	assert.Contains(t, out, "project_id=4")
}
