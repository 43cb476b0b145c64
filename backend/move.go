package main

import "fmt"

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewMove(x, y int) Move {
	return Move{X: x, Y: y}
}

// PassMove is the sentinel for a skipped turn. It never lands on the board.
func PassMove() Move {
	return Move{X: -1, Y: -1}
}

func (m Move) IsPass() bool {
	return m.X < 0 || m.Y < 0
}

func (m Move) IsValid(boardSize int) bool {
	return m.X >= 0 && m.Y >= 0 && m.X < boardSize && m.Y < boardSize
}

func (m Move) Equals(other Move) bool {
	return m.X == other.X && m.Y == other.Y
}

// Notation renders the move for the log: column letter then row number,
// so x=0,y=0 is "A1" and x=3,y=2 is "D3".
func (m Move) Notation() string {
	return fmt.Sprintf("%c%d", 'A'+rune(m.X), m.Y+1)
}
