package session

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("session")

type metrics struct {
	rounds        metric.Int64Counter
	gamesFinished metric.Int64Counter
	invalidMoves  metric.Int64Counter
	active        metric.Int64UpDownCounter
}

func newMetrics() (*metrics, error) {
	rounds, err := meter.Int64Counter("session.rounds",
		metric.WithDescription("Rounds played by human players"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rounds counter: %w", err)
	}
	gamesFinished, err := meter.Int64Counter("session.games_finished",
		metric.WithDescription("Finished games by outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create games finished counter: %w", err)
	}
	invalidMoves, err := meter.Int64Counter("session.invalid_moves",
		metric.WithDescription("Rejected player moves"))
	if err != nil {
		return nil, fmt.Errorf("failed to create invalid moves counter: %w", err)
	}
	active, err := meter.Int64UpDownCounter("session.active",
		metric.WithDescription("Open sessions"))
	if err != nil {
		return nil, fmt.Errorf("failed to create active sessions counter: %w", err)
	}

	return &metrics{
		rounds:        rounds,
		gamesFinished: gamesFinished,
		invalidMoves:  invalidMoves,
		active:        active,
	}, nil
}
