package game

// HasWon reports whether lastMove completed a row of at least winLength marks.
// Only lines through lastMove are examined, so it must be called right after
// every move.
func HasWon(view BoardView, mark Mark, lastMove Coordinate, winLength int) bool {
	for _, dir := range Directions {
		// Forwards including the move itself, backwards excluding it
		n := view.CountAdjacent(lastMove, dir, mark, true)
		n += view.CountAdjacent(lastMove, dir.Reverse(), mark, false)
		if n >= winLength {
			return true
		}
	}
	return false
}
