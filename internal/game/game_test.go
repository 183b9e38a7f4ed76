package game

import (
	"testing"
)

// lines3x3 are every row of three on a 3x3 board.
var lines3x3 = map[string][3]Coordinate{
	"column 0":      {{0, 0}, {0, 1}, {0, 2}},
	"column 1":      {{1, 0}, {1, 1}, {1, 2}},
	"column 2":      {{2, 0}, {2, 1}, {2, 2}},
	"row 0":         {{0, 0}, {1, 0}, {2, 0}},
	"row 1":         {{0, 1}, {1, 1}, {2, 1}},
	"row 2":         {{0, 2}, {1, 2}, {2, 2}},
	"main diagonal": {{0, 0}, {1, 1}, {2, 2}},
	"anti-diagonal": {{2, 0}, {1, 1}, {0, 2}},
}

func TestHasWon3x3(t *testing.T) {
	for name, line := range lines3x3 {
		for _, mark := range []Mark{Player, Computer} {
			t.Run(name+" "+mark.String(), func(t *testing.T) {
				b, _ := NewBoard(3, 3)
				onLine := map[Coordinate]bool{}
				for _, c := range line {
					b.SetAt(c, mark)
					onLine[c] = true
				}

				for y := 0; y < 3; y++ {
					for x := 0; x < 3; x++ {
						c := Coordinate{X: x, Y: y}
						if got := HasWon(b.View(), mark, c, 3); got != onLine[c] {
							t.Errorf("HasWon at %s = %v, want %v", c, got, onLine[c])
						}
					}
				}
			})
		}
	}
}

func TestHasWon(t *testing.T) {
	tests := []struct {
		name      string
		rows      []string
		last      Coordinate
		mark      Mark
		winLength int
		want      bool
	}{
		{
			name:      "No winner - single mark",
			rows:      []string{"...", ".X.", "..."},
			last:      Coordinate{1, 1},
			mark:      Player,
			winLength: 3,
			want:      false,
		},
		{
			name:      "Wrong mark on the line",
			rows:      []string{"XXX", "...", "..."},
			last:      Coordinate{1, 0},
			mark:      Computer,
			winLength: 3,
			want:      false,
		},
		{
			name:      "Four in a row with the last move in the middle",
			rows:      []string{"......", ".OOOO.", "......"},
			last:      Coordinate{2, 1},
			mark:      Computer,
			winLength: 4,
			want:      true,
		},
		{
			name:      "Broken row is not a win",
			rows:      []string{"......", ".OO.OO", "......"},
			last:      Coordinate{2, 1},
			mark:      Computer,
			winLength: 4,
			want:      false,
		},
		{
			name:      "Longer row than needed",
			rows:      []string{"XXXXX", ".....", "....."},
			last:      Coordinate{4, 0},
			mark:      Player,
			winLength: 3,
			want:      true,
		},
		{
			name:      "Rising diagonal on a wide board",
			rows:      []string{"......X", ".....X.", "....X..", "...X..."},
			last:      Coordinate{4, 2},
			mark:      Player,
			winLength: 4,
			want:      true,
		},
		{
			name:      "Falling diagonal one short",
			rows:      []string{"X....", ".X...", "..X..", ".....", "....."},
			last:      Coordinate{0, 0},
			mark:      Player,
			winLength: 4,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromRows(t, tt.rows)
			if got := HasWon(b.View(), tt.mark, tt.last, tt.winLength); got != tt.want {
				t.Errorf("HasWon() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{name: "Smallest board", settings: Settings{3, 3, 3}},
		{name: "Too narrow", settings: Settings{2, 3, 3}, wantErr: true},
		{name: "Too low", settings: Settings{3, 2, 3}, wantErr: true},
		{name: "Win length too small", settings: Settings{3, 3, 2}, wantErr: true},
		{name: "Large board needs five", settings: Settings{10, 10, 4}, wantErr: true},
		{name: "Large board with five", settings: Settings{10, 10, 5}},
		{name: "Only one large dimension", settings: Settings{10, 9, 3}},
		{name: "Win length longer than the board", settings: Settings{3, 3, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// boardFromRows builds a board from strings where X is the player, O the
// computer and anything else an empty square.
func boardFromRows(t *testing.T, rows []string) *Board {
	t.Helper()
	b, err := NewBoard(len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	for y, row := range rows {
		for x, ch := range row {
			switch ch {
			case 'X':
				b.Set(x, y, Player)
			case 'O':
				b.Set(x, y, Computer)
			}
		}
	}
	return b
}
