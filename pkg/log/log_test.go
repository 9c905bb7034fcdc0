// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendCtx(t *testing.T) {
	assertion := assert.New(t)

	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "debug"}, &buf)

	ctx := AppendCtx(context.Background(), slog.String("X-REQUEST-ID", "req-1"))
	ctx = AppendCtx(ctx, slog.String("user_id", "42"))

	logger.InfoContext(ctx, "listing loaded", "count", 3)

	var record map[string]any
	assertion.NoError(json.Unmarshal(buf.Bytes(), &record))
	assertion.Equal("req-1", record["X-REQUEST-ID"])
	assertion.Equal("42", record["user_id"])
	assertion.Equal(float64(3), record["count"])
}

func TestAppendCtxDoesNotLeakBetweenSiblings(t *testing.T) {
	assertion := assert.New(t)

	parent := AppendCtx(context.Background(), slog.String("a", "1"))
	left := AppendCtx(parent, slog.String("b", "2"))
	right := AppendCtx(parent, slog.String("c", "3"))

	leftAttrs := left.Value(slogFields).([]slog.Attr)
	rightAttrs := right.Value(slogFields).([]slog.Attr)

	assertion.Len(leftAttrs, 2)
	assertion.Len(rightAttrs, 2)
	assertion.Equal("b", leftAttrs[1].Key)
	assertion.Equal("c", rightAttrs[1].Key)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{name: "debug", level: "debug", expected: slog.LevelDebug},
		{name: "warn upper case", level: "WARN", expected: slog.LevelWarn},
		{name: "error", level: "error", expected: slog.LevelError},
		{name: "unknown falls back to info", level: "verbose", expected: slog.LevelInfo},
		{name: "empty falls back to info", level: "", expected: slog.LevelInfo},
	}

	assertion := assert.New(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion.Equal(tc.expected, ParseLevel(tc.level))
		})
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "warn", Format: "text"}, &buf)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
