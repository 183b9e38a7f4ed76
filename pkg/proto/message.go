package proto

import "ctchen222/N-In-A-Row/internal/session"

// Client message types
const (
	TypeMove  = "move"
	TypeUndo  = "undo"
	TypeReset = "reset"
)

// Server message types
const (
	TypeUpdate = "update"
	TypeError  = "error"
)

// ClientToServerMessage represents a message from the client to the server.
// Position is [row, col], 1-based.
type ClientToServerMessage struct {
	Type           string `json:"type" validate:"required,oneof=move undo reset"`
	Position       []int  `json:"position,omitempty" validate:"omitempty,len=2,dive,min=1"`
	ComputerStarts *bool  `json:"computer_starts,omitempty"`
}

// ServerToClientMessage represents a message from the server to the client.
// Updates carry the session snapshot inline.
type ServerToClientMessage struct {
	Type   string `json:"type" validate:"required"`
	Reason string `json:"reason,omitempty"`
	*session.Snapshot
}

// NewUpdate wraps a snapshot into an update message.
func NewUpdate(snap session.Snapshot) *ServerToClientMessage {
	return &ServerToClientMessage{Type: TypeUpdate, Snapshot: &snap}
}

// NewError creates an error message.
func NewError(reason string) *ServerToClientMessage {
	return &ServerToClientMessage{Type: TypeError, Reason: reason}
}
