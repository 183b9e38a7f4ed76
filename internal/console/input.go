package console

import (
	"ctchen222/N-In-A-Row/internal/game"
	"strconv"
	"strings"
)

// Single character commands
const (
	CommandChangeSettings = 'c'
	CommandQuit           = 'q'
	CommandReset          = 'r'
	CommandUndo           = 'u'
)

// ParseCoordinate reads a move typed as "row col" or "row,col", 1-based.
// Anything else gives game.NoMove.
func ParseCoordinate(input string) game.Coordinate {
	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) < 2 {
		return game.NoMove
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.NoMove
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.NoMove
	}
	return game.Coordinate{X: col - 1, Y: row - 1}
}
