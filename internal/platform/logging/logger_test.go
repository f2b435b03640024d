package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo).Component("writer")
	logger.Info("rows written", "rows", 100, "error", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{`"msg":"rows written"`, `"component":"writer"`, `"rows":100`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log line, got=%s", want, out)
		}
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelWarn)
	logger.Info("hidden")
	logger.Debug("hidden too")

	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got=%s", buf.String())
	}
}

func TestLogger_NilReceiverUsesDefault(t *testing.T) {
	var logger *Logger
	logger.Warn("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%s want=%s", raw, got, want)
		}
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x03},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	var buf bytes.Buffer
	NewJSONTo(&buf, LevelInfo).InfoContext(ctx, "chunk finished", "duration", 1500*time.Millisecond)

	out := buf.String()
	for _, want := range []string{`"trace_id":"` + spanCtx.TraceID().String() + `"`, `"span_id":"` + spanCtx.SpanID().String() + `"`, `"duration":"1.5s"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log line, got=%s", want, out)
		}
	}
}
