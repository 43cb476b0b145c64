package main

// HumanPlayer stages at most one move submitted by the presentation layer.
// The tick loop applies it; undo and reset drop whatever is staged.
type HumanPlayer struct {
	staged *Move
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

// ChooseMove is never consulted for the human seat; the tick loop pulls
// staged moves instead.
func (h *HumanPlayer) ChooseMove(GameState, Rules) Move {
	return PassMove()
}

func (h *HumanPlayer) SetPendingMove(move Move) {
	h.staged = &move
}

func (h *HumanPlayer) HasPendingMove() bool {
	return h.staged != nil
}

func (h *HumanPlayer) TakePendingMove() Move {
	if h.staged == nil {
		return PassMove()
	}
	move := *h.staged
	h.staged = nil
	return move
}

func (h *HumanPlayer) ClearPending() {
	h.staged = nil
}
