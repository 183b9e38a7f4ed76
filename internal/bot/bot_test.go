package bot

import (
	"ctchen222/N-In-A-Row/internal/game"
	"errors"
	"math/rand/v2"
	"testing"
)

func TestForDifficulty(t *testing.T) {
	tests := []struct {
		difficulty string
		wantSmart  bool
		wantErr    bool
	}{
		{difficulty: "random"},
		{difficulty: "easy"},
		{difficulty: "smart", wantSmart: true},
		{difficulty: "HARD", wantSmart: true},
		{difficulty: "", wantSmart: true},
		{difficulty: "medium", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			s, err := ForDifficulty(tt.difficulty)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDifficulty) {
					t.Fatalf("ForDifficulty(%q) error = %v, want ErrUnknownDifficulty", tt.difficulty, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForDifficulty(%q) unexpected error: %v", tt.difficulty, err)
			}
			_, isSmart := s.(*HeuristicSelector)
			if isSmart != tt.wantSmart {
				t.Errorf("ForDifficulty(%q) returned %T", tt.difficulty, s)
			}
		})
	}
}

func TestRandomMove(t *testing.T) {
	t.Run("Only one spot left", func(t *testing.T) {
		b := boardFromRows(t, "XOX", "OXO", "X.O")
		got, err := NewRandomSelector().ChooseMove(b.View(), 3)
		if err != nil {
			t.Fatalf("ChooseMove failed: %v", err)
		}
		if got != (game.Coordinate{X: 1, Y: 2}) {
			t.Errorf("ChooseMove should pick the only available spot (1, 2), but got %s", got)
		}
	})

	t.Run("Multiple spots left - every pick is empty and all are reachable", func(t *testing.T) {
		b := boardFromRows(t, "X..", ".O.", "...")
		s := NewRandomSelectorWithSource(rand.New(rand.NewPCG(3, 5)))

		seen := map[game.Coordinate]bool{}
		for i := 0; i < 300; i++ {
			got, err := s.ChooseMove(b.View(), 3)
			if err != nil {
				t.Fatalf("ChooseMove failed: %v", err)
			}
			if b.At(got) != game.Empty {
				t.Fatalf("ChooseMove returned taken square %s", got)
			}
			seen[got] = true
		}
		if len(seen) != 7 {
			t.Errorf("expected all 7 empty squares to be picked over 300 runs, saw %d", len(seen))
		}
	})

	t.Run("Full board", func(t *testing.T) {
		b := boardFromRows(t, "XOX", "OXO", "XOX")
		got, err := NewRandomSelector().ChooseMove(b.View(), 3)
		if !errors.Is(err, game.ErrNoAvailableMove) {
			t.Errorf("expected ErrNoAvailableMove on a full board, got %v", err)
		}
		if !got.IsNone() {
			t.Errorf("expected NoMove on a full board, got %s", got)
		}
	})

	t.Run("Zero value selector", func(t *testing.T) {
		b := boardFromRows(t, "...", "...", "...")
		var s RandomSelector
		if _, err := s.ChooseMove(b.View(), 3); err != nil {
			t.Fatalf("ChooseMove failed: %v", err)
		}
	})
}
