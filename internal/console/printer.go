package console

import (
	"ctchen222/N-In-A-Row/internal/game"
	"io"
	"strconv"
	"strings"
)

// ANSI colours
const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorWhite = "\x1b[37m"
)

// Printer draws boards up to 99x99 with 1-based row and column numbers.
type Printer struct {
	Color bool
}

// Print writes the board to w.
func (p Printer) Print(w io.Writer, board game.BoardView) error {
	_, err := io.WriteString(w, p.Render(board))
	return err
}

// Render returns the board as text.
func (p Printer) Render(board game.BoardView) string {
	var sb strings.Builder
	width := board.Width()
	line := strings.Repeat("-", width*2+1)

	// Column numbers, tens on the first line and ones on the second
	sb.WriteString("  ")
	for x := 1; x <= width; x++ {
		sb.WriteByte(' ')
		if tens := x / 10; tens > 0 {
			sb.WriteString(strconv.Itoa(tens))
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString("\n  ")
	for x := 1; x <= width; x++ {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(x % 10))
	}
	sb.WriteByte('\n')

	for y := 0; y < board.Height(); y++ {
		sb.WriteString("  " + line + "\n")
		sb.WriteString(strconv.Itoa(y + 1))
		if y < 9 {
			sb.WriteByte(' ')
		}
		for x := 0; x < width; x++ {
			sb.WriteByte('|')
			sb.WriteString(p.symbol(board.Get(x, y)))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  " + line + "\n")
	return sb.String()
}

func (p Printer) symbol(m game.Mark) string {
	sym := m.String()
	if m == game.Empty {
		sym = " "
	}
	if !p.Color {
		return sym
	}

	switch m {
	case game.Player:
		return colorGreen + sym + colorWhite
	case game.Computer:
		return colorRed + sym + colorWhite
	default:
		return colorWhite + sym + colorWhite
	}
}
