package game

import "fmt"

// Coordinate is a position on the board. X is the column and Y is the row.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoMove stands for a missing move, e.g. input that could not be parsed
// or the computer reply of a round that ended on the player's move.
var NoMove = Coordinate{X: -1, Y: -1}

// IsNone reports whether c is the NoMove sentinel.
func (c Coordinate) IsNone() bool {
	return c == NoMove
}

// Move steps the coordinate once in the given direction.
func (c Coordinate) Move(d Direction) Coordinate {
	return c.MoveN(d, 1)
}

// MoveN steps the coordinate times steps in the given direction.
func (c Coordinate) MoveN(d Direction, times int) Coordinate {
	return Coordinate{X: c.X + d.DX*times, Y: c.Y + d.DY*times}
}

func (c Coordinate) String() string {
	if c.IsNone() {
		return "none"
	}
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Direction is a unit step on the board.
type Direction struct {
	DX int
	DY int
}

// Reverse returns the direction pointing the other way.
func (d Direction) Reverse() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

var (
	Vertical     = Direction{DX: 1, DY: 0}
	Horizontal   = Direction{DX: 0, DY: 1}
	DiagonalDown = Direction{DX: 1, DY: 1}
	DiagonalUp   = Direction{DX: 1, DY: -1}
)

// Directions lists the four lines a row of marks can lie on. The reverse of
// each direction covers the other half of the line.
var Directions = [4]Direction{Vertical, Horizontal, DiagonalDown, DiagonalUp}
