package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.name), "ParseLevel(%q)", tt.name)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("added expense", "amount", "5.00")
	assert.Empty(t, buf.String())

	logger.Warn("save failed", "error", "disk full")
	assert.Contains(t, buf.String(), "save failed")
	assert.Contains(t, buf.String(), "disk full")
}

func TestSetup_EnvOverride(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	logger := Setup("error")
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

func TestNew_NoColorForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelWarn).Warn("budget exceeded")
	assert.NotContains(t, buf.String(), "\x1b[", "no ANSI escapes when writing to a buffer")
}
