package bot

import (
	"ctchen222/N-In-A-Row/internal/game"
	"math/rand/v2"
)

// RandomSelector picks any empty square with equal probability.
type RandomSelector struct {
	intN func(n int) int
}

// NewRandomSelector returns a selector backed by math/rand/v2.
func NewRandomSelector() *RandomSelector {
	return &RandomSelector{intN: rand.IntN}
}

// NewRandomSelectorWithSource returns a selector drawing from r, for
// reproducible games.
func NewRandomSelectorWithSource(r *rand.Rand) *RandomSelector {
	return &RandomSelector{intN: r.IntN}
}

// ChooseMove implements game.MoveSelector.
func (s *RandomSelector) ChooseMove(view game.BoardView, _ int) (game.Coordinate, error) {
	available := availableMoves(view)
	if len(available) == 0 {
		return game.NoMove, game.ErrNoAvailableMove
	}

	intN := s.intN
	if intN == nil {
		intN = rand.IntN
	}
	return available[intN(len(available))], nil
}

func availableMoves(view game.BoardView) []game.Coordinate {
	var moves []game.Coordinate
	for x := 0; x < view.Width(); x++ {
		for y := 0; y < view.Height(); y++ {
			if view.Get(x, y) == game.Empty {
				moves = append(moves, game.Coordinate{X: x, Y: y})
			}
		}
	}
	return moves
}
