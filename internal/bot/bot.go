package bot

import (
	"ctchen222/N-In-A-Row/internal/game"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty names accepted by ForDifficulty.
const (
	DifficultyRandom = "random"
	DifficultySmart  = "smart"
)

// ForDifficulty returns the move selector for a difficulty name. "easy" and
// "hard" are accepted as aliases, and an empty name means smart.
func ForDifficulty(difficulty string) (game.MoveSelector, error) {
	name, err := Normalize(difficulty)
	if err != nil {
		return nil, err
	}
	if name == DifficultyRandom {
		return NewRandomSelector(), nil
	}
	return NewHeuristicSelector(), nil
}

// Normalize maps a difficulty name to its canonical form.
func Normalize(difficulty string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case DifficultyRandom, "easy":
		return DifficultyRandom, nil
	case DifficultySmart, "hard", "":
		return DifficultySmart, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
}
