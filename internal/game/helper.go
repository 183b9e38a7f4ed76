package game

// Mark represents the content of a square: empty, the human player or the computer.
type Mark uint8

const (
	Empty Mark = iota
	Player
	Computer
)

func (m Mark) String() string {
	switch m {
	case Player:
		return "X"
	case Computer:
		return "O"
	default:
		return ""
	}
}

// MarshalText encodes a mark the way the clients draw it ("", "X" or "O").
func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Board limits
const (
	MinWidth          = 3
	MinHeight         = 3
	MinWinLengthSmall = 3
	MinWinLengthLarge = 5
	LargeBoardSize    = 10 // Both dimensions at least this make a large board
)

// IsLargeBoard reports whether a board of the given size needs the larger win length.
func IsLargeBoard(width, height int) bool {
	return width >= LargeBoardSize && height >= LargeBoardSize
}

// MinWinLength returns the smallest win length allowed on a board of the given size.
func MinWinLength(width, height int) int {
	if IsLargeBoard(width, height) {
		return MinWinLengthLarge
	}
	return MinWinLengthSmall
}
