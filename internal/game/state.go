package game

// State is the outcome of an engine operation.
type State int

const (
	ReadyForNextMove State = iota
	InvalidPlayerMove
	PlayerWon
	ComputerWon
	DrawGame
	UserQuit // Only set by front-ends
)

var stateNames = map[State]string{
	ReadyForNextMove:  "ready_for_next_move",
	InvalidPlayerMove: "invalid_player_move",
	PlayerWon:         "player_won",
	ComputerWon:       "computer_won",
	DrawGame:          "draw_game",
	UserQuit:          "user_quit",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsOver reports whether the state ends the game.
func (s State) IsOver() bool {
	return s == PlayerWon || s == ComputerWon || s == DrawGame || s == UserQuit
}
