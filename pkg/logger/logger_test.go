package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parsing log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestInfoCarriesServiceName(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	logg.Info(context.Background(), "request.start")

	entry := logLine(t, &buf)
	if entry["service"] != "api" || entry["message"] != "request.start" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithProductID(ctx, "prod-456")
	logg.Info(ctx, "cache.invalidate")

	entry := logLine(t, &buf)
	if entry["request_id"] != "req-123" || entry["product_id"] != "prod-456" {
		t.Fatalf("expected scoped fields, got %v", entry)
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Level: zerolog.InfoLevel, Output: &buf})

	logg.Debug(context.Background(), "noise")
	if buf.Len() != 0 {
		t.Fatalf("debug must be filtered at info level, got %q", buf.String())
	}
}

func TestErrorIncludesCauseAndStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	logg.Error(context.Background(), "request.error", errors.New("boom"))

	entry := logLine(t, &buf)
	if entry["error"] != "boom" {
		t.Fatalf("expected error field, got %v", entry)
	}
	if entry["stack"] == nil || entry["stack"] == "" {
		t.Fatalf("expected a stack trace on error entries")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bananas": zerolog.InfoLevel,
	}
	for value, want := range cases {
		if got := ParseLevel(value); got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", value, want, got)
		}
	}
}
