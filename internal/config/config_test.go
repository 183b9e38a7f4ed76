package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "LOG_LEVEL", "OTEL_EXPORTER_OTLP_ENDPOINT", "TRACE_STDOUT", "REDIS_CONNSTRING",
		"SESSION_SECRET", "SESSION_TTL", "BOARD_WIDTH", "BOARD_HEIGHT", "WIN_LENGTH", "DIFFICULTY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.Defaults.Width)
	assert.Equal(t, 3, cfg.Defaults.Height)
	assert.Equal(t, 3, cfg.Defaults.WinLength)
	assert.Equal(t, "smart", cfg.Difficulty)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("BOARD_WIDTH", "15")
	t.Setenv("BOARD_HEIGHT", "12")
	t.Setenv("WIN_LENGTH", "")
	t.Setenv("DIFFICULTY", "easy")
	t.Setenv("TRACE_STDOUT", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.Defaults.WinLength, "large boards default to five in a row")
	assert.Equal(t, "random", cfg.Difficulty)
	assert.True(t, cfg.TraceStdout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LOG_LEVEL", "loud"},
		{"SESSION_TTL", "soon"},
		{"SESSION_TTL", "-1m"},
		{"BOARD_WIDTH", "wide"},
		{"BOARD_WIDTH", "2"},
		{"DIFFICULTY", "impossible"},
		{"TRACE_STDOUT", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
