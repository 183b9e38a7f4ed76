package models

import (
	"ctchen222/N-In-A-Row/internal/game"
	"ctchen222/N-In-A-Row/internal/session"
)

// CreateSessionRequest defines the structure for a new game request. Every
// field is optional; a missing dimension comes from the server defaults.
type CreateSessionRequest struct {
	Width          int    `json:"width" binding:"omitempty,min=3,max=80"`
	Height         int    `json:"height" binding:"omitempty,min=3,max=30"`
	WinLength      int    `json:"win_length" binding:"omitempty,min=3"`
	Difficulty     string `json:"difficulty" binding:"omitempty,oneof=random smart easy hard"`
	ComputerStarts *bool  `json:"computer_starts"`
}

// Options converts the request into session options.
func (r CreateSessionRequest) Options() session.Options {
	return session.Options{
		Settings:       game.Settings{Width: r.Width, Height: r.Height, WinLength: r.WinLength},
		Difficulty:     r.Difficulty,
		ComputerStarts: r.ComputerStarts,
	}
}

// CreateSessionResponse carries the new session and the token that grants access to it.
type CreateSessionResponse struct {
	Session session.Snapshot `json:"session"`
	Token   string           `json:"token"`
}

// MoveRequest is a move in 1-based row and column numbers, as shown to players.
type MoveRequest struct {
	Row int `json:"row" binding:"required,min=1"`
	Col int `json:"col" binding:"required,min=1"`
}

// Coordinate converts the move to a board coordinate.
func (r MoveRequest) Coordinate() game.Coordinate {
	return game.Coordinate{X: r.Col - 1, Y: r.Row - 1}
}

// ResetRequest defines the structure for a reset request.
type ResetRequest struct {
	ComputerStarts *bool `json:"computer_starts"`
}
