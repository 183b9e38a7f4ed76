package server

import (
	"context"
	"ctchen222/N-In-A-Row/internal/api/controller"
	"ctchen222/N-In-A-Row/internal/api/response"
	"ctchen222/N-In-A-Row/internal/game"
	"ctchen222/N-In-A-Row/internal/session"
	"ctchen222/N-In-A-Row/internal/validator"
	"ctchen222/N-In-A-Row/pkg/proto"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	maxMessageSize = 1024
	writeWait      = 10 * time.Second
)

// handleWebSocket upgrades an authorised request and then answers every
// client message with the resulting session update.
func (s *Server) handleWebSocket(c *gin.Context) {
	sessionID := c.GetString(controller.SessionIDKey)
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	// Fail before upgrading so the client gets a proper HTTP status
	snap, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session not found")
		response.AbortWithError(c, err)
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(ctx, "failed to upgrade connection", "session.id", sessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	slog.InfoContext(ctx, "websocket connected", "session.id", sessionID)
	if err := writeMessage(conn, proto.NewUpdate(snap)); err != nil {
		slog.WarnContext(ctx, "failed to write initial update", "session.id", sessionID, "error", err)
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "websocket connection error", "session.id", sessionID, "error", err)
				span.RecordError(err)
			}
			slog.InfoContext(ctx, "websocket disconnected", "session.id", sessionID)
			return
		}

		reply, opErr := s.handleMessage(ctx, sessionID, raw)
		if err := writeMessage(conn, reply); err != nil {
			slog.WarnContext(ctx, "failed to write message", "session.id", sessionID, "error", err)
			span.RecordError(err)
			return
		}
		if errors.Is(opErr, session.ErrNotFound) {
			slog.InfoContext(ctx, "session gone, closing websocket", "session.id", sessionID)
			closeConn(conn, websocket.CloseGoingAway, "session closed")
			return
		}
	}
}

// handleMessage dispatches one client message and builds the reply. The
// error is the one the session operation failed with, if any.
func (s *Server) handleMessage(ctx context.Context, sessionID string, raw []byte) (*proto.ServerToClientMessage, error) {
	var message proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		slog.DebugContext(ctx, "malformed message", "session.id", sessionID, "error", err)
		return proto.NewError("malformed message"), nil
	}
	if err := validator.GetValidator().Struct(message); err != nil {
		slog.DebugContext(ctx, "invalid message", "session.id", sessionID, "error", err)
		return proto.NewError(err.Error()), nil
	}

	ctx, span := tracer.Start(ctx, "server.handleMessage", trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("message.type", message.Type),
	))
	defer span.End()

	var (
		snap session.Snapshot
		err  error
	)
	switch message.Type {
	case proto.TypeMove:
		move := game.Coordinate{X: message.Position[1] - 1, Y: message.Position[0] - 1}
		snap, err = s.sessions.Play(ctx, sessionID, move)
	case proto.TypeUndo:
		snap, err = s.sessions.Undo(ctx, sessionID)
	case proto.TypeReset:
		snap, err = s.sessions.Reset(ctx, sessionID, message.ComputerStarts)
	}
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, session.ErrGameOver) {
			span.SetStatus(codes.Error, "Session operation failed")
		}
		return proto.NewError(response.FromError(err).Extras), err
	}
	return proto.NewUpdate(snap), nil
}

func writeMessage(conn *websocket.Conn, message *proto.ServerToClientMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(message)
}

func closeConn(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
