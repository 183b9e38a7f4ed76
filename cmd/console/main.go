package main

import (
	"ctchen222/N-In-A-Row/internal/config"
	"ctchen222/N-In-A-Row/internal/console"
	"ctchen222/N-In-A-Row/internal/logger"
	"log/slog"
	"os"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	// Diagnostics go to stderr so they do not interleave with the board
	logger.Init(cfg.LogLevel, os.Stderr)

	_, noColor := os.LookupEnv("NO_COLOR")
	c := console.New(os.Stdin, os.Stdout, console.WithColor(!noColor))
	if err := c.Run(); err != nil {
		slog.Error("console game failed", "error", err)
		os.Exit(1)
	}
}
