package main

// IPlayer is a seat at the board. Human seats stage moves for the tick loop;
// AI seats either answer ChooseMove synchronously or think on a worker.
type IPlayer interface {
	IsHuman() bool
	ChooseMove(state GameState, rules Rules) Move
}
