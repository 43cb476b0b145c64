package main

import "fmt"

type Rules struct {
	settings GameSettings
}

func NewRules(settings GameSettings) Rules {
	return Rules{settings: settings}
}

var flipDirections = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}}

// IsLegal checks a move for the session board. Turn and status checks belong
// to the game layer; this answers only whether the placement is playable.
func (r Rules) IsLegal(state GameState, move Move, player PlayerColor) (bool, string) {
	if !move.IsValid(r.settings.BoardSize) {
		return false, "out of bounds"
	}
	if !state.Board.IsEmpty(move.X, move.Y) {
		return false, "occupied"
	}
	if !r.moveFlips(state.Board, move, CellFromPlayer(player)) {
		return false, "flips no discs"
	}
	return true, ""
}

func (r Rules) IsLegalDefault(state GameState, move Move) (bool, string) {
	return r.IsLegal(state, move, state.ToMove)
}

func (r Rules) FindFlips(board Board, move Move, playerCell Cell) []int {
	return r.FindFlipsInto(board, move, playerCell, nil)
}

// FindFlipsInto returns the flat indices of every opposing disc flipped by
// placing playerCell at move: in each of the 8 directions, a contiguous run
// of opponent discs bounded by a same-player disc. Empty result means the
// move is illegal. The buffer is reused when it has capacity.
func (r Rules) FindFlipsInto(board Board, move Move, playerCell Cell, flips []int) []int {
	if cap(flips) < 8 {
		flips = make([]int, 0, 16)
	}
	flips = flips[:0]
	if !board.IsEmpty(move.X, move.Y) {
		return flips
	}
	opponentCell := CellBlack
	if playerCell == CellBlack {
		opponentCell = CellWhite
	}
	size := board.Size()
	for i := 0; i < 8; i++ {
		dx := flipDirections[i][0]
		dy := flipDirections[i][1]
		x := move.X + dx
		y := move.Y + dy
		run := 0
		for x >= 0 && y >= 0 && x < size && y < size && board.cells[y*size+x] == opponentCell {
			run++
			x += dx
			y += dy
		}
		if run == 0 || x < 0 || y < 0 || x >= size || y >= size || board.cells[y*size+x] != playerCell {
			continue
		}
		for step := 1; step <= run; step++ {
			flips = append(flips, (move.Y+step*dy)*size+(move.X+step*dx))
		}
	}
	return flips
}

// moveFlips is FindFlips without the collection, for legality scans.
func (r Rules) moveFlips(board Board, move Move, playerCell Cell) bool {
	opponentCell := CellBlack
	if playerCell == CellBlack {
		opponentCell = CellWhite
	}
	size := board.Size()
	for i := 0; i < 8; i++ {
		dx := flipDirections[i][0]
		dy := flipDirections[i][1]
		x := move.X + dx
		y := move.Y + dy
		run := 0
		for x >= 0 && y >= 0 && x < size && y < size && board.cells[y*size+x] == opponentCell {
			run++
			x += dx
			y += dy
		}
		if run > 0 && x >= 0 && y >= 0 && x < size && y < size && board.cells[y*size+x] == playerCell {
			return true
		}
	}
	return false
}

// LegalMoves enumerates in row-major order.
func (r Rules) LegalMoves(board Board, player PlayerColor) []Move {
	playerCell := CellFromPlayer(player)
	moves := []Move{}
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.cells[y*size+x] != CellEmpty {
				continue
			}
			if r.moveFlips(board, Move{X: x, Y: y}, playerCell) {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

func (r Rules) HasLegalMove(board Board, player PlayerColor) bool {
	playerCell := CellFromPlayer(player)
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.cells[y*size+x] != CellEmpty {
				continue
			}
			if r.moveFlips(board, Move{X: x, Y: y}, playerCell) {
				return true
			}
		}
	}
	return false
}

// IsTerminal reports whether neither side has a legal move. One stuck side
// alone is a pass, not the end of the game.
func (r Rules) IsTerminal(board Board) bool {
	return !r.HasLegalMove(board, PlayerBlack) && !r.HasLegalMove(board, PlayerWhite)
}

func (r Rules) Score(board Board) (black, white int) {
	return board.CountDiscs()
}

func (r Rules) Winner(board Board) GameStatus {
	black, white := board.CountDiscs()
	switch {
	case black > white:
		return StatusBlackWon
	case white > black:
		return StatusWhiteWon
	default:
		return StatusDraw
	}
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{size=%d}", r.settings.BoardSize)
}
