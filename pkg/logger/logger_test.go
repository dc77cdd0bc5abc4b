package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/soundprediction/hestia/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorHandlerWritesMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewColorHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Info("candidates fetched", "count", 42)

	out := buf.String()
	assert.Contains(t, out, "candidates fetched")
	assert.Contains(t, out, "count")
	assert.Contains(t, out, "42")
}

func TestColorHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := logger.NewColorHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	require.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, h.Enabled(context.Background(), slog.LevelError))

	log := slog.New(h)
	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestColorHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewColorHandler(&buf, nil)).With("component", "search")

	log.Info("done")

	assert.Contains(t, buf.String(), "component")
	assert.Contains(t, buf.String(), "search")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, logger.ParseLevel(tt.in), tt.in)
	}
}

func TestNewJSONFormat(t *testing.T) {
	log := logger.New("info", "json")
	require.NotNil(t, log)
	log.Info("ok")
}
