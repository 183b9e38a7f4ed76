package controller

import (
	"context"
	"ctchen222/N-In-A-Row/internal/api/models"
	"ctchen222/N-In-A-Row/internal/api/response"
	"ctchen222/N-In-A-Row/internal/api/service"
	"ctchen222/N-In-A-Row/internal/game"
	"ctchen222/N-In-A-Row/internal/session"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// SessionIDKey is the gin context key RequireSession stores the verified session ID under.
	SessionIDKey = "session_id"
	// TokenHeader carries the renewed session token on every authorised response.
	TokenHeader = "X-Session-Token"
)

// Sessions is the part of session.Manager the controller needs.
type Sessions interface {
	Create(ctx context.Context, opts session.Options) (session.Snapshot, error)
	Get(ctx context.Context, id string) (session.Snapshot, error)
	Play(ctx context.Context, id string, move game.Coordinate) (session.Snapshot, error)
	Undo(ctx context.Context, id string) (session.Snapshot, error)
	Reset(ctx context.Context, id string, computerStarts *bool) (session.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// SessionController handles the game session HTTP requests.
type SessionController struct {
	sessions Sessions
	tokens   service.TokenService
}

// NewSessionController creates a new SessionController.
func NewSessionController(sessions Sessions, tokens service.TokenService) *SessionController {
	return &SessionController{
		sessions: sessions,
		tokens:   tokens,
	}
}

// Create starts a game and returns it together with its access token.
func (sc *SessionController) Create(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := sc.sessions.Create(c.Request.Context(), req.Options())
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	token, err := sc.tokens.Issue(snap.ID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to issue session token", "session.id", snap.ID, "error", err)
		// Nobody can reach the session without a token
		_ = sc.sessions.Delete(c.Request.Context(), snap.ID)
		response.AbortWithError(c, err)
		return
	}

	response.CreatedResponse(c, models.CreateSessionResponse{Session: snap, Token: token})
}

// Get returns the session state.
func (sc *SessionController) Get(c *gin.Context) {
	snap, err := sc.sessions.Get(c.Request.Context(), c.GetString(SessionIDKey))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Move plays one round.
func (sc *SessionController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := sc.sessions.Play(c.Request.Context(), c.GetString(SessionIDKey), req.Coordinate())
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Undo takes back the latest round.
func (sc *SessionController) Undo(c *gin.Context) {
	snap, err := sc.sessions.Undo(c.Request.Context(), c.GetString(SessionIDKey))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Reset starts the game over.
func (sc *SessionController) Reset(c *gin.Context) {
	var req models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := sc.sessions.Reset(c.Request.Context(), c.GetString(SessionIDKey), req.ComputerStarts)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.SuccessResponse(c, snap)
}

// Delete closes the session.
func (sc *SessionController) Delete(c *gin.Context) {
	if err := sc.sessions.Delete(c.Request.Context(), c.GetString(SessionIDKey)); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.SuccessResponse(c, gin.H{"message": "Session closed"})
}

// RequireSession checks the bearer token, or the token query parameter used
// by websocket clients, against the :id path parameter. A valid token is
// renewed through TokenHeader so an active client never outlives it.
func (sc *SessionController) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw = c.Query("token")
		}
		if raw == "" {
			response.AbortWithError(c, response.ErrUnauthorized)
			return
		}

		sessionID, err := sc.tokens.Verify(raw)
		if err != nil {
			response.AbortWithError(c, fmt.Errorf("%w: %w", response.ErrUnauthorized, err))
			return
		}
		if sessionID != c.Param("id") {
			response.AbortWithError(c, response.ErrForbidden)
			return
		}

		renewed, err := sc.tokens.Issue(sessionID)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "failed to renew session token", "session.id", sessionID, "error", err)
		} else {
			c.Header(TokenHeader, renewed)
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
