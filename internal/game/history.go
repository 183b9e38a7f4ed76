package game

// MovePair is one round: the player's move and the computer's reply.
// ComputerMove is NoMove when the round ended on the player's move.
type MovePair struct {
	PlayerMove   Coordinate
	ComputerMove Coordinate
}

type undoStack []MovePair

func (s *undoStack) push(p MovePair) {
	*s = append(*s, p)
}

func (s *undoStack) pop() (MovePair, bool) {
	if len(*s) == 0 {
		return MovePair{}, false
	}
	last := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return last, true
}

func (s undoStack) peek() (MovePair, bool) {
	if len(s) == 0 {
		return MovePair{}, false
	}
	return s[len(s)-1], true
}

func (s *undoStack) clear() {
	*s = (*s)[:0]
}
