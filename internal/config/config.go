package config

import (
	"ctchen222/N-In-A-Row/internal/bot"
	"ctchen222/N-In-A-Row/internal/game"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings read from the environment.
type Config struct {
	HTTPAddr      string
	LogLevel      slog.Level
	OTLPEndpoint  string // empty disables telemetry export
	TraceStdout   bool
	RedisAddr     string // empty disables event publishing
	SessionSecret []byte // empty means a random key per process
	SessionTTL    time.Duration
	Defaults      game.Settings
	Difficulty    string
}

// Load reads the configuration from environment variables, falling back to
// defaults for the ones that are not set.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		RedisAddr:     os.Getenv("REDIS_CONNSTRING"),
		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.TraceStdout, err = parseBool("TRACE_STDOUT", false); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "2h")); err != nil {
		return nil, fmt.Errorf("failed to parse SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	if cfg.Defaults.Width, err = parseInt("BOARD_WIDTH", game.MinWidth); err != nil {
		return nil, err
	}
	if cfg.Defaults.Height, err = parseInt("BOARD_HEIGHT", game.MinHeight); err != nil {
		return nil, err
	}
	if cfg.Defaults.WinLength, err = parseInt("WIN_LENGTH", game.MinWinLength(cfg.Defaults.Width, cfg.Defaults.Height)); err != nil {
		return nil, err
	}
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default board: %w", err)
	}

	if cfg.Difficulty, err = bot.Normalize(getEnv("DIFFICULTY", bot.DifficultySmart)); err != nil {
		return nil, fmt.Errorf("failed to parse DIFFICULTY: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return n, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return b, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("failed to parse LOG_LEVEL: %w", err)
	}
	return level, nil
}
