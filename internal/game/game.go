package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig            = errors.New("invalid game settings")
	ErrNoAvailableMove          = errors.New("no available move")
	ErrEngineInvariantViolation = errors.New("engine invariant violated")
)

// MoveSelector picks the computer's next move.
type MoveSelector interface {
	ChooseMove(view BoardView, winLength int) (Coordinate, error)
}

// Settings are fixed for the lifetime of an Engine. Changing them means
// building a new Engine.
type Settings struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	WinLength int `json:"win_length"`
}

// Validate checks the board size and the win length, including the larger
// minimum win length on large boards.
func (s Settings) Validate() error {
	if s.Width < MinWidth {
		return fmt.Errorf("%w: width must be %d or greater", ErrInvalidConfig, MinWidth)
	}
	if s.Height < MinHeight {
		return fmt.Errorf("%w: height must be %d or greater", ErrInvalidConfig, MinHeight)
	}
	if minLen := MinWinLength(s.Width, s.Height); s.WinLength < minLen {
		return fmt.Errorf("%w: win length must be at least %d on a %dx%d board", ErrInvalidConfig, minLen, s.Width, s.Height)
	}
	return nil
}

// Engine runs a game between the human player and a computer MoveSelector.
// It is not safe for concurrent use.
type Engine struct {
	board       *Board
	settings    Settings
	selector    MoveSelector
	playedMoves int
	maxMoves    int
	undo        undoStack
}

// NewEngine validates the settings and sets up an empty board. When
// computerStarts is true the computer makes its opening move before
// NewEngine returns.
func NewEngine(settings Settings, selector MoveSelector, computerStarts bool) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if selector == nil {
		return nil, fmt.Errorf("%w: no move selector", ErrInvalidConfig)
	}

	board, err := NewBoard(settings.Width, settings.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e := &Engine{
		board:    board,
		settings: settings,
		selector: selector,
		maxMoves: settings.Width * settings.Height,
	}
	if computerStarts {
		e.makeComputerMove()
	}
	return e, nil
}

// PlayARound places the player's move and, unless that ended the game, the
// computer's reply.
func (e *Engine) PlayARound(playerMove Coordinate) State {
	if !e.trySetPlayerMove(playerMove) {
		return InvalidPlayerMove
	}

	// A winning move that also fills the board counts as a win
	if e.hasWon(Player, playerMove) {
		e.undo.push(MovePair{PlayerMove: playerMove, ComputerMove: NoMove})
		return PlayerWon
	}
	if e.isBoardFull() {
		e.undo.push(MovePair{PlayerMove: playerMove, ComputerMove: NoMove})
		return DrawGame
	}

	computerMove := e.makeComputerMove()
	e.undo.push(MovePair{PlayerMove: playerMove, ComputerMove: computerMove})

	if e.hasWon(Computer, computerMove) {
		return ComputerWon
	}
	if e.isBoardFull() {
		return DrawGame
	}
	return ReadyForNextMove
}

// CanUndo reports whether there is a round to take back.
func (e *Engine) CanUndo() bool {
	return len(e.undo) > 0
}

// Undo takes back the most recent round. With nothing to undo it returns
// InvalidPlayerMove and leaves the board as it is.
func (e *Engine) Undo() State {
	moves, ok := e.undo.pop()
	if !ok {
		return InvalidPlayerMove
	}

	for _, c := range [2]Coordinate{moves.PlayerMove, moves.ComputerMove} {
		if c.IsNone() {
			continue
		}
		e.board.SetAt(c, Empty)
		e.playedMoves--
	}
	return ReadyForNextMove
}

// Reset empties the board and the undo history.
func (e *Engine) Reset(computerStarts bool) {
	e.playedMoves = 0
	e.undo.clear()
	e.board.Fill(Empty)

	if computerStarts {
		e.makeComputerMove()
	}
}

// LastComputerMove returns the computer's move of the latest round, if it made one.
func (e *Engine) LastComputerMove() (Coordinate, bool) {
	last, ok := e.undo.peek()
	if !ok || last.ComputerMove.IsNone() {
		return NoMove, false
	}
	return last.ComputerMove, true
}

func (e *Engine) Board() BoardView    { return e.board.View() }
func (e *Engine) Settings() Settings  { return e.settings }
func (e *Engine) PlayedMoves() int    { return e.playedMoves }
func (e *Engine) MaxMoves() int       { return e.maxMoves }
func (e *Engine) History() []MovePair { return append([]MovePair(nil), e.undo...) }

func (e *Engine) trySetPlayerMove(c Coordinate) bool {
	if c.IsNone() || !e.board.IsWithinBounds(c.X, c.Y) || e.board.At(c) != Empty {
		return false
	}

	e.board.SetAt(c, Player)
	e.playedMoves++
	return true
}

// makeComputerMove asks the selector for a move and places it. A selector
// that fails or picks a taken square is a bug, so it panics.
func (e *Engine) makeComputerMove() Coordinate {
	c, err := e.selector.ChooseMove(e.board.View(), e.settings.WinLength)
	if err != nil {
		panic(fmt.Errorf("%w: move selector failed: %w", ErrEngineInvariantViolation, err))
	}
	if !e.board.IsWithinBounds(c.X, c.Y) || e.board.At(c) != Empty {
		panic(fmt.Errorf("%w: computer chose unavailable square %s", ErrEngineInvariantViolation, c))
	}

	e.board.SetAt(c, Computer)
	e.playedMoves++
	return c
}

func (e *Engine) hasWon(m Mark, lastMove Coordinate) bool {
	return HasWon(e.board.View(), m, lastMove, e.settings.WinLength)
}

func (e *Engine) isBoardFull() bool {
	return e.playedMoves == e.maxMoves
}
