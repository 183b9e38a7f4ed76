package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	TypeSessionCreated = "session_created"
	TypeGameFinished   = "game_finished"
	TypeSessionClosed  = "session_closed"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// SessionCreatedPayload is the payload for the "session_created" event.
type SessionCreatedPayload struct {
	SessionID      string `json:"session_id"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	WinLength      int    `json:"win_length"`
	Difficulty     string `json:"difficulty"`
	ComputerStarts bool   `json:"computer_starts"`
}

// GameFinishedPayload is the payload for the "game_finished" event.
type GameFinishedPayload struct {
	SessionID   string `json:"session_id"`
	State       string `json:"state"`
	PlayedMoves int    `json:"played_moves"`
}

// SessionClosedPayload is the payload for the "session_closed" event.
type SessionClosedPayload struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

// New wraps a payload into an Event.
func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}

// Publisher sends session events to whoever listens.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// RedisPublisher publishes events as JSON on the Redis events channel.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

// NewRedisPublisher creates a publisher on EventsChannel.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: EventsChannel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}
