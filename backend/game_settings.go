package main

import "fmt"

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// Depth is the fixed search depth for a difficulty when dynamic depth is off.
func (d Difficulty) Depth() int {
	switch d {
	case DifficultyEasy:
		return 2
	case DifficultyMedium:
		return 4
	default:
		return 6
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	default:
		return "hard"
	}
}

func DifficultyFromString(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyMedium, fmt.Errorf("unknown difficulty %q", s)
	}
}

type GameSettings struct {
	BoardSize    int        `json:"board_size"`
	BlackType    PlayerType `json:"-"`
	WhiteType    PlayerType `json:"-"`
	Difficulty   Difficulty `json:"-"`
	DynamicDepth bool       `json:"dynamic_depth"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize:    8,
		BlackType:    PlayerHuman,
		WhiteType:    PlayerAI,
		Difficulty:   DifficultyMedium,
		DynamicDepth: false,
	}
}

// Validate rejects malformed settings before any session state is created.
func (s GameSettings) Validate() error {
	if s.BoardSize < 6 || s.BoardSize > 20 {
		return fmt.Errorf("board size %d out of range [6,20]", s.BoardSize)
	}
	if s.BoardSize%2 != 0 {
		return fmt.Errorf("board size %d must be even", s.BoardSize)
	}
	switch s.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("unknown difficulty %d", s.Difficulty)
	}
	switch s.BlackType {
	case PlayerHuman, PlayerAI:
	default:
		return fmt.Errorf("unknown black player type %d", s.BlackType)
	}
	switch s.WhiteType {
	case PlayerHuman, PlayerAI:
	default:
		return fmt.Errorf("unknown white player type %d", s.WhiteType)
	}
	return nil
}
