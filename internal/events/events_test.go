package events_test

import (
	"context"
	"ctchen222/N-In-A-Row/internal/db"
	"ctchen222/N-In-A-Row/internal/events"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestNew(t *testing.T) {
	event, err := events.New(events.TypeGameFinished, events.GameFinishedPayload{
		SessionID:   "s1",
		State:       "player_won",
		PlayedMoves: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, events.TypeGameFinished, event.Type)
	assert.JSONEq(t, `{"session_id":"s1","state":"player_won","played_moves":5}`, string(event.Payload))

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"game_finished","payload":{"session_id":"s1","state":"player_won","played_moves":5}}`, string(data))
}

func TestRedisPublisher(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(connStr)
	require.NoError(t, err)

	rdb, err := db.NewRedisClient(ctx, opts.Addr)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	sub := rdb.Subscribe(ctx, events.EventsChannel)
	t.Cleanup(func() { sub.Close() })
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	event, err := events.New(events.TypeSessionClosed, events.SessionClosedPayload{SessionID: "s1", Reason: "expired"})
	require.NoError(t, err)
	require.NoError(t, events.NewRedisPublisher(rdb).Publish(ctx, event))

	select {
	case msg := <-sub.Channel():
		var got events.Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, events.TypeSessionClosed, got.Type)
		assert.JSONEq(t, `{"session_id":"s1","reason":"expired"}`, string(got.Payload))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the published event")
	}
}

func TestNewRedisClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := db.NewRedisClient(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}
