package main

import "testing"

func TestValidateBoardSize(t *testing.T) {
	for _, size := range []int{6, 8, 12, 20} {
		settings := DefaultGameSettings()
		settings.BoardSize = size
		if err := settings.Validate(); err != nil {
			t.Fatalf("expected size %d to validate, got %v", size, err)
		}
	}
	for _, size := range []int{0, 4, 22, 7, 9, 19} {
		settings := DefaultGameSettings()
		settings.BoardSize = size
		if err := settings.Validate(); err == nil {
			t.Fatalf("expected size %d to be rejected", size)
		}
	}
}

func TestDifficultyDepths(t *testing.T) {
	cases := []struct {
		difficulty Difficulty
		depth      int
		name       string
	}{
		{DifficultyEasy, 2, "easy"},
		{DifficultyMedium, 4, "medium"},
		{DifficultyHard, 6, "hard"},
	}
	for _, tc := range cases {
		if got := tc.difficulty.Depth(); got != tc.depth {
			t.Fatalf("expected depth %d for %s, got %d", tc.depth, tc.name, got)
		}
		if got := tc.difficulty.String(); got != tc.name {
			t.Fatalf("expected name %q, got %q", tc.name, got)
		}
		parsed, err := DifficultyFromString(tc.name)
		if err != nil || parsed != tc.difficulty {
			t.Fatalf("expected %q to parse back, got %v (%v)", tc.name, parsed, err)
		}
	}
	if _, err := DifficultyFromString("impossible"); err == nil {
		t.Fatalf("expected unknown difficulty to be rejected")
	}
}
