package session

import (
	"ctchen222/N-In-A-Row/internal/game"
	"sync"
	"sync/atomic"
	"time"
)

// Options describe a new session. Zero values fall back to the manager's
// defaults.
type Options struct {
	Settings       game.Settings
	Difficulty     string
	ComputerStarts *bool // nil tosses a coin
}

// Snapshot is the client-facing view of a session after an operation.
type Snapshot struct {
	ID               string           `json:"id"`
	Settings         game.Settings    `json:"settings"`
	Difficulty       string           `json:"difficulty"`
	Board            [][]game.Mark    `json:"board"`
	State            game.State       `json:"state"`
	PlayedMoves      int              `json:"played_moves"`
	CanUndo          bool             `json:"can_undo"`
	LastComputerMove *game.Coordinate `json:"last_computer_move,omitempty"`
}

// Session is one game between a client and the computer. mu serialises
// every call into the engine.
type Session struct {
	ID         string
	Difficulty string
	CreatedAt  time.Time

	mu     sync.Mutex
	engine *game.Engine
	state  game.State

	lastActive atomic.Int64 // unix nanos, read without mu by the sweeper
}

func (s *Session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastActive.Load()))
}

// snapshot must be called with s.mu held.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:          s.ID,
		Settings:    s.engine.Settings(),
		Difficulty:  s.Difficulty,
		Board:       s.engine.Board().Snapshot(),
		State:       s.state,
		PlayedMoves: s.engine.PlayedMoves(),
		CanUndo:     s.engine.CanUndo(),
	}
	if c, ok := s.engine.LastComputerMove(); ok {
		snap.LastComputerMove = &c
	}
	return snap
}
