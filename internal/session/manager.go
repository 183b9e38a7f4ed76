package session

import (
	"context"
	"ctchen222/N-In-A-Row/internal/bot"
	"ctchen222/N-In-A-Row/internal/events"
	"ctchen222/N-In-A-Row/internal/game"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrGameOver = errors.New("game is over")
)

// Reasons carried by the session_closed event
const (
	ReasonDeleted     = "deleted"
	ReasonExpired     = "expired"
	ReasonEngineError = "engine_error"
)

var tracer = otel.Tracer("session")

// Manager owns every open session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	publisher     events.Publisher
	metrics       *metrics
	defaults      game.Settings
	difficulty    string
	ttl           time.Duration
	sweepInterval time.Duration
	coinToss      func() bool
	now           func() time.Time
	selectorFor   func(difficulty string) (game.MoveSelector, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithDefaults sets the board and difficulty used when Create gets zero values.
func WithDefaults(settings game.Settings, difficulty string) Option {
	return func(m *Manager) {
		m.defaults = settings
		m.difficulty = difficulty
	}
}

// WithTTL sets how long a session may stay idle before Expire drops it.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// WithSweepInterval sets how often Run looks for idle sessions.
func WithSweepInterval(d time.Duration) Option {
	return func(m *Manager) { m.sweepInterval = d }
}

// WithCoinToss replaces the coin deciding who opens when Options.ComputerStarts is nil.
func WithCoinToss(toss func() bool) Option {
	return func(m *Manager) { m.coinToss = toss }
}

// WithSelectorFactory replaces bot.ForDifficulty.
func WithSelectorFactory(f func(difficulty string) (game.MoveSelector, error)) Option {
	return func(m *Manager) { m.selectorFor = f }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager. A nil publisher drops events.
func NewManager(publisher events.Publisher, opts ...Option) (*Manager, error) {
	mt, err := newMetrics()
	if err != nil {
		return nil, err
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	m := &Manager{
		sessions:      make(map[string]*Session),
		publisher:     publisher,
		metrics:       mt,
		defaults:      game.Settings{Width: game.MinWidth, Height: game.MinHeight, WinLength: game.MinWinLengthSmall},
		difficulty:    bot.DifficultySmart,
		ttl:           2 * time.Hour,
		sweepInterval: time.Minute,
		coinToss:      func() bool { return rand.IntN(2) == 0 },
		now:           time.Now,
		selectorFor:   bot.ForDifficulty,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Create starts a new game and registers it under a fresh ID.
func (m *Manager) Create(ctx context.Context, opts Options) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "session.Create")
	defer span.End()

	settings := m.resolveSettings(opts.Settings)
	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = m.difficulty
	}
	difficulty, err := bot.Normalize(difficulty)
	if err != nil {
		return Snapshot{}, recordError(span, err, "Unknown difficulty")
	}
	selector, err := m.selectorFor(difficulty)
	if err != nil {
		return Snapshot{}, recordError(span, err, "Unknown difficulty")
	}

	computerStarts := m.whoStarts(opts.ComputerStarts)
	span.SetAttributes(
		attribute.Int("game.width", settings.Width),
		attribute.Int("game.height", settings.Height),
		attribute.Int("game.win_length", settings.WinLength),
		attribute.String("game.difficulty", difficulty),
		attribute.Bool("game.computer_starts", computerStarts),
	)

	var engine *game.Engine
	if perr := protect(func() { engine, err = game.NewEngine(settings, selector, computerStarts) }); perr != nil {
		slog.ErrorContext(ctx, "engine failed while opening a game", "error", perr)
		return Snapshot{}, recordError(span, perr, "Engine invariant violated")
	}
	if err != nil {
		return Snapshot{}, recordError(span, err, "Invalid settings")
	}

	now := m.now()
	s := &Session{
		ID:         uuid.NewString(),
		Difficulty: difficulty,
		CreatedAt:  now,
		engine:     engine,
		state:      game.ReadyForNextMove,
	}
	s.touch(now)
	span.SetAttributes(attribute.String("session.id", s.ID))

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.metrics.active.Add(ctx, 1)

	slog.InfoContext(ctx, "session created", "session.id", s.ID, "game.width", settings.Width,
		"game.height", settings.Height, "game.win_length", settings.WinLength, "game.difficulty", difficulty)
	m.publish(ctx, events.TypeSessionCreated, events.SessionCreatedPayload{
		SessionID:      s.ID,
		Width:          settings.Width,
		Height:         settings.Height,
		WinLength:      settings.WinLength,
		Difficulty:     difficulty,
		ComputerStarts: computerStarts,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Get returns the current snapshot of a session.
func (m *Manager) Get(ctx context.Context, id string) (Snapshot, error) {
	_, span := tracer.Start(ctx, "session.Get", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, recordError(span, err, "Session not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(m.now())
	return s.snapshot(), nil
}

// Play makes the player's move and the computer's reply. An invalid move
// is not an error: the snapshot carries game.InvalidPlayerMove and the
// board is unchanged.
func (m *Manager) Play(ctx context.Context, id string, move game.Coordinate) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "session.Play", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.Int("move.x", move.X),
		attribute.Int("move.y", move.Y),
	))
	defer span.End()

	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, recordError(span, err, "Session not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(m.now())

	if s.state.IsOver() {
		return Snapshot{}, recordError(span, fmt.Errorf("%w: %s", ErrGameOver, s.state), "Game is over")
	}

	var state game.State
	if err := protect(func() { state = s.engine.PlayARound(move) }); err != nil {
		m.drop(ctx, s, err)
		return Snapshot{}, recordError(span, err, "Engine invariant violated")
	}
	s.state = state
	span.SetAttributes(attribute.String("game.state", state.String()))

	if state == game.InvalidPlayerMove {
		m.metrics.invalidMoves.Add(ctx, 1)
		slog.DebugContext(ctx, "invalid move", "session.id", id, "move", move.String())
		return s.snapshot(), nil
	}
	m.metrics.rounds.Add(ctx, 1)

	if state.IsOver() {
		m.metrics.gamesFinished.Add(ctx, 1, metric.WithAttributes(attribute.String("game.state", state.String())))
		slog.InfoContext(ctx, "game finished", "session.id", id, "game.state", state.String(),
			"game.played_moves", s.engine.PlayedMoves())
		m.publish(ctx, events.TypeGameFinished, events.GameFinishedPayload{
			SessionID:   id,
			State:       state.String(),
			PlayedMoves: s.engine.PlayedMoves(),
		})
	}
	return s.snapshot(), nil
}

// Undo takes back the latest round, also after the game has ended. With
// nothing to undo the snapshot carries game.InvalidPlayerMove.
func (m *Manager) Undo(ctx context.Context, id string) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "session.Undo", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, recordError(span, err, "Session not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(m.now())

	if state := s.engine.Undo(); state == game.InvalidPlayerMove {
		slog.DebugContext(ctx, "nothing to undo", "session.id", id)
		snap := s.snapshot()
		snap.State = state
		return snap, nil
	}
	s.state = game.ReadyForNextMove
	return s.snapshot(), nil
}

// Reset starts the game over on the same board size. A nil computerStarts
// tosses a coin.
func (m *Manager) Reset(ctx context.Context, id string, computerStarts *bool) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "session.Reset", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, recordError(span, err, "Session not found")
	}

	starts := m.whoStarts(computerStarts)
	span.SetAttributes(attribute.Bool("game.computer_starts", starts))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(m.now())

	if err := protect(func() { s.engine.Reset(starts) }); err != nil {
		m.drop(ctx, s, err)
		return Snapshot{}, recordError(span, err, "Engine invariant violated")
	}
	s.state = game.ReadyForNextMove
	slog.InfoContext(ctx, "session reset", "session.id", id, "game.computer_starts", starts)
	return s.snapshot(), nil
}

// Delete closes a session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "session.Delete", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	if !m.remove(ctx, id) {
		return recordError(span, fmt.Errorf("%w: %s", ErrNotFound, id), "Session not found")
	}
	slog.InfoContext(ctx, "session deleted", "session.id", id)
	m.publish(ctx, events.TypeSessionClosed, events.SessionClosedPayload{SessionID: id, Reason: ReasonDeleted})
	return nil
}

// Expire drops every session idle for longer than the TTL and returns how
// many it dropped.
func (m *Manager) Expire(ctx context.Context, now time.Time) int {
	ctx, span := tracer.Start(ctx, "session.Expire")
	defer span.End()

	var expired []string
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	span.SetAttributes(attribute.Int("session.expired", len(expired)))
	for _, id := range expired {
		m.metrics.active.Add(ctx, -1)
		slog.InfoContext(ctx, "session expired", "session.id", id)
		m.publish(ctx, events.TypeSessionClosed, events.SessionClosedPayload{SessionID: id, Reason: ReasonExpired})
	}
	return len(expired)
}

// Run expires idle sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "session sweeper started", "session.ttl", m.ttl.String())
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "session sweeper stopped")
			return
		case <-ticker.C:
			m.Expire(ctx, m.now())
		}
	}
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) lookup(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

func (m *Manager) remove(ctx context.Context, id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		m.metrics.active.Add(ctx, -1)
	}
	return ok
}

// drop closes a session whose engine can no longer be trusted.
func (m *Manager) drop(ctx context.Context, s *Session, err error) {
	slog.ErrorContext(ctx, "engine invariant violated, closing session", "session.id", s.ID, "error", err)
	if m.remove(ctx, s.ID) {
		m.publish(ctx, events.TypeSessionClosed, events.SessionClosedPayload{SessionID: s.ID, Reason: ReasonEngineError})
	}
}

// whoStarts tosses the coin unless the caller decided.
func (m *Manager) whoStarts(computerStarts *bool) bool {
	if computerStarts != nil {
		return *computerStarts
	}
	return m.coinToss()
}

// resolveSettings fills every zero dimension from the defaults. The default
// win length only applies to the default board.
func (m *Manager) resolveSettings(s game.Settings) game.Settings {
	if s.Width == 0 && s.Height == 0 && s.WinLength == 0 {
		return m.defaults
	}
	if s.Width == 0 {
		s.Width = m.defaults.Width
	}
	if s.Height == 0 {
		s.Height = m.defaults.Height
	}
	if s.WinLength == 0 {
		s.WinLength = game.MinWinLength(s.Width, s.Height)
	}
	return s
}

func (m *Manager) publish(ctx context.Context, eventType string, payload any) {
	event, err := events.New(eventType, payload)
	if err == nil {
		err = m.publisher.Publish(ctx, event)
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to publish session event", "event", eventType, "error", err)
	}
}

// protect turns an engine invariant panic into an error. Other panics are
// re-raised.
func protect(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && errors.Is(e, game.ErrEngineInvariantViolation) {
			err = e
			return
		}
		panic(r)
	}()
	fn()
	return nil
}

func recordError(span trace.Span, err error, description string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, description)
	return err
}
