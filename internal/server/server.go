package server

import (
	"ctchen222/N-In-A-Row/internal/api/controller"
	"ctchen222/N-In-A-Row/internal/api/response"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Sessions is what the server needs from the session manager.
type Sessions interface {
	controller.Sessions
	Len() int
}

type Server struct {
	engine   *gin.Engine
	sessions Sessions
	upgrader websocket.Upgrader
}

func NewServer(sessions Sessions, sc *controller.SessionController) *Server {
	s := &Server{
		engine:   gin.New(),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.registerRoutes(sc)
	return s
}

// Engine returns the HTTP handler.
func (s *Server) Engine() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes(sc *controller.SessionController) {
	s.engine.Use(gin.Recovery(), traceRequests())

	s.engine.GET("/healthz", s.health)

	api := s.engine.Group("/api/sessions")
	api.POST("", sc.Create)

	one := api.Group("/:id", sc.RequireSession())
	one.GET("", sc.Get)
	one.DELETE("", sc.Delete)
	one.POST("/moves", sc.Move)
	one.POST("/undo", sc.Undo)
	one.POST("/reset", sc.Reset)

	s.engine.GET("/ws/sessions/:id", sc.RequireSession(), s.handleWebSocket)
}

func (s *Server) health(c *gin.Context) {
	response.SuccessResponse(c, gin.H{"status": "ok", "sessions": s.sessions.Len()})
}

// traceRequests opens a span per request and logs it when done.
func traceRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath(), trace.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
		))
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		slog.DebugContext(ctx, "request handled", "http.method", c.Request.Method, "http.path", c.Request.URL.Path,
			"http.status_code", status, "duration", time.Since(start))
	}
}
