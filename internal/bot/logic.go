package bot

import (
	"ctchen222/N-In-A-Row/internal/game"
)

// Weights are the priority boosts the heuristic adds on top of a run's length.
// The winning boosts are higher than the blocking ones so the computer takes a
// win instead of blocking.
type Weights struct {
	BlockLarge int // opponent is one move from winning
	BlockSmall int // opponent run two moves from winning, open on both ends
	WinLarge   int
	WinSmall   int
}

// DefaultWeights returns the standard boosts.
func DefaultWeights() Weights {
	return Weights{
		BlockLarge: 100,
		BlockSmall: 20,
		WinLarge:   300,
		WinSmall:   40,
	}
}

// HeuristicSelector scores every empty square by the runs of marks it
// would extend or cut, for both sides, and plays the best square. It looks
// only at the current position.
type HeuristicSelector struct {
	weights  Weights
	fallback game.MoveSelector
}

// HeuristicOption configures a HeuristicSelector.
type HeuristicOption func(*HeuristicSelector)

// WithWeights replaces the default boosts.
func WithWeights(w Weights) HeuristicOption {
	return func(s *HeuristicSelector) {
		s.weights = w
	}
}

// WithFallback sets the selector used when no square has any priority and
// the centre is taken.
func WithFallback(fallback game.MoveSelector) HeuristicOption {
	return func(s *HeuristicSelector) {
		s.fallback = fallback
	}
}

// NewHeuristicSelector creates a heuristic selector with the default weights
// and a random fallback.
func NewHeuristicSelector(opts ...HeuristicOption) *HeuristicSelector {
	s := &HeuristicSelector{
		weights:  DefaultWeights(),
		fallback: NewRandomSelector(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChooseMove implements game.MoveSelector.
func (s *HeuristicSelector) ChooseMove(view game.BoardView, winLength int) (game.Coordinate, error) {
	p := s.score(view, winLength)

	// Nothing to build on or block: the opening, or no row can be completed anymore
	if p.max == 0 {
		return s.centreOrFallback(view, winLength)
	}
	return p.best(), nil
}

// score fills the priority grid for both sides.
func (s *HeuristicSelector) score(view game.BoardView, winLength int) *priorities {
	p := newPriorities(view, winLength)
	for _, dir := range game.Directions {
		p.add(dir, game.Player, s.weights.BlockLarge, s.weights.BlockSmall)
	}
	for _, dir := range game.Directions {
		p.add(dir, game.Computer, s.weights.WinLarge, s.weights.WinSmall)
	}
	return p
}

func (s *HeuristicSelector) centreOrFallback(view game.BoardView, winLength int) (game.Coordinate, error) {
	centre := game.Coordinate{X: view.Width() / 2, Y: view.Height() / 2}
	if isAvailable(view, centre.X, centre.Y) {
		return centre, nil
	}
	return s.fallback.ChooseMove(view, winLength)
}

// priorities is the scratch grid of one ChooseMove call.
type priorities struct {
	view          game.BoardView
	winLength     int
	oneMoveToWin  int
	twoMovesToWin int
	grid          [][]int
	max           int
}

func newPriorities(view game.BoardView, winLength int) *priorities {
	grid := make([][]int, view.Height())
	for y := range grid {
		grid[y] = make([]int, view.Width())
	}
	return &priorities{
		view:          view,
		winLength:     winLength,
		oneMoveToWin:  winLength - 1,
		twoMovesToWin: winLength - 2,
		grid:          grid,
	}
}

// add scores every empty square for the runs of mark along dir through it.
func (p *priorities) add(dir game.Direction, mark game.Mark, largeBoost, smallBoost int) {
	rev := dir.Reverse()

	for y := 0; y < p.view.Height(); y++ {
		for x := 0; x < p.view.Width(); x++ {
			if !isAvailable(p.view, x, y) {
				continue
			}

			pos := game.Coordinate{X: x, Y: y}
			runFw := p.view.CountAdjacent(pos, dir, mark, false)
			runRev := p.view.CountAdjacent(pos, rev, mark, false)
			priority := runFw + runRev
			if priority == 0 {
				continue
			}

			// Free squares past both ends of the run
			spaceFw := p.view.CountAdjacent(pos.MoveN(dir, runFw), dir, game.Empty, false)
			spaceRev := p.view.CountAdjacent(pos.MoveN(rev, runRev), rev, game.Empty, false)

			// No row of winLength can ever go through this square on this line
			if 1+spaceFw+spaceRev+runFw+runRev < p.winLength {
				continue
			}

			if priority >= p.oneMoveToWin {
				priority += largeBoost
			} else if priority == p.twoMovesToWin && spaceFw != 0 && spaceRev != 0 {
				priority += smallBoost
			}

			p.increase(x, y, priority)
		}
	}
}

func (p *priorities) increase(x, y, priority int) {
	p.grid[y][x] += priority
	if p.grid[y][x] > p.max {
		p.max = p.grid[y][x]
	}
}

// best returns the first square holding the maximum, scanning columns first.
func (p *priorities) best() game.Coordinate {
	for x := 0; x < p.view.Width(); x++ {
		for y := 0; y < p.view.Height(); y++ {
			if p.grid[y][x] == p.max {
				return game.Coordinate{X: x, Y: y}
			}
		}
	}
	return game.NoMove
}

func isAvailable(view game.BoardView, x, y int) bool {
	return view.IsWithinBounds(x, y) && view.Get(x, y) == game.Empty
}
