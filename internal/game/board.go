package game

import (
	"errors"
	"fmt"
)

var ErrInvalidDimension = errors.New("invalid board dimension")

// BoardView is the read-only side of a Board. Move selectors, the win check
// and renderers only ever get a BoardView.
type BoardView interface {
	Width() int
	Height() int
	Get(x, y int) Mark
	At(c Coordinate) Mark
	IsWithinBounds(x, y int) bool
	CountAdjacent(start Coordinate, dir Direction, mark Mark, includeStart bool) int
	Snapshot() [][]Mark
}

// Board is a height x width grid of marks, indexed [row][col].
type Board struct {
	width  int
	height int
	cells  [][]Mark
}

// NewBoard creates an empty board.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}

	cells := make([][]Mark, height)
	for y := range cells {
		cells[y] = make([]Mark, width)
	}
	return &Board{width: width, height: height, cells: cells}, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Get returns the mark at (x, y). The caller checks bounds.
func (b *Board) Get(x, y int) Mark {
	return b.cells[y][x]
}

// At returns the mark at c. The caller checks bounds.
func (b *Board) At(c Coordinate) Mark {
	return b.cells[c.Y][c.X]
}

// Set places a mark at (x, y). The caller checks bounds.
func (b *Board) Set(x, y int, m Mark) {
	b.cells[y][x] = m
}

// SetAt places a mark at c. The caller checks bounds.
func (b *Board) SetAt(c Coordinate, m Mark) {
	b.cells[c.Y][c.X] = m
}

func (b *Board) IsWithinBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// CountAdjacent walks from start (or the square after it when includeStart is
// false) in direction dir and counts the squares holding mark until it leaves
// the board or meets a different mark.
func (b *Board) CountAdjacent(start Coordinate, dir Direction, mark Mark, includeStart bool) int {
	pos := start
	if !includeStart {
		pos = start.Move(dir)
	}

	n := 0
	for b.IsWithinBounds(pos.X, pos.Y) && b.cells[pos.Y][pos.X] == mark {
		n++
		pos = pos.Move(dir)
	}
	return n
}

// Fill sets every square to m.
func (b *Board) Fill(m Mark) {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = m
		}
	}
}

// Snapshot copies the grid.
func (b *Board) Snapshot() [][]Mark {
	out := make([][]Mark, b.height)
	for y := range b.cells {
		out[y] = make([]Mark, b.width)
		copy(out[y], b.cells[y])
	}
	return out
}

// View returns a read-only handle on the same squares.
func (b *Board) View() BoardView {
	return readOnlyBoard{b: b}
}

// readOnlyBoard forwards only the non-mutating methods, so a BoardView cannot
// be type-asserted back into a *Board.
type readOnlyBoard struct {
	b *Board
}

func (r readOnlyBoard) Width() int                   { return r.b.Width() }
func (r readOnlyBoard) Height() int                  { return r.b.Height() }
func (r readOnlyBoard) Get(x, y int) Mark            { return r.b.Get(x, y) }
func (r readOnlyBoard) At(c Coordinate) Mark         { return r.b.At(c) }
func (r readOnlyBoard) IsWithinBounds(x, y int) bool { return r.b.IsWithinBounds(x, y) }
func (r readOnlyBoard) Snapshot() [][]Mark           { return r.b.Snapshot() }

func (r readOnlyBoard) CountAdjacent(start Coordinate, dir Direction, mark Mark, includeStart bool) int {
	return r.b.CountAdjacent(start, dir, mark, includeStart)
}
