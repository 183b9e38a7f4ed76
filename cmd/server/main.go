package main

import (
	"context"
	"ctchen222/N-In-A-Row/internal/api/controller"
	"ctchen222/N-In-A-Row/internal/api/service"
	"ctchen222/N-In-A-Row/internal/config"
	"ctchen222/N-In-A-Row/internal/db"
	"ctchen222/N-In-A-Row/internal/events"
	"ctchen222/N-In-A-Row/internal/logger"
	"ctchen222/N-In-A-Row/internal/server"
	"ctchen222/N-In-A-Row/internal/session"
	"ctchen222/N-In-A-Row/internal/telemetry"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, telemetry.Options{
		Endpoint:    cfg.OTLPEndpoint,
		TraceStdout: cfg.TraceStdout,
	})
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	// Initialize logger after telemetry so the bridge picks up the provider
	logger.Init(cfg.LogLevel, os.Stdout)
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Events go to Redis when it is configured
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			slog.Error("failed to initialize redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb)
		slog.Info("publishing session events", "redis.addr", cfg.RedisAddr, "channel", events.EventsChannel)
	}

	// Create services
	manager, err := session.NewManager(publisher,
		session.WithDefaults(cfg.Defaults, cfg.Difficulty),
		session.WithTTL(cfg.SessionTTL),
	)
	if err != nil {
		slog.Error("failed to create session manager", "error", err)
		os.Exit(1)
	}
	go manager.Run(ctx)

	tokens, err := service.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		slog.Error("failed to create token service", "error", err)
		os.Exit(1)
	}
	if len(cfg.SessionSecret) == 0 {
		slog.Warn("SESSION_SECRET not set, session tokens will not survive a restart")
	}

	// Create controllers and the Gin-based server
	sessionController := controller.NewSessionController(manager, tokens)
	srv := server.NewServer(manager, sessionController)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server started", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		slog.Error("http server failed", "error", err)
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}
