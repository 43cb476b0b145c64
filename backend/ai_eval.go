package main

import (
	"fmt"
	"sync"
)

// Square weights for the static evaluator. Corners dominate, the squares
// diagonally touching a corner are liabilities, remaining edge squares are
// good, the interior is neutral.
const (
	weightCorner     = 120
	weightCornerDiag = -20
	weightEdge       = 20
	weightInterior   = 1
)

type weightCache struct {
	mu      sync.Mutex
	weights map[int][]int
}

var cachedWeights = &weightCache{weights: make(map[int][]int)}

// PositionWeights returns the static weight matrix for a board size,
// flat-indexed like Board.cells. Built once per size; callers must not
// mutate the returned slice.
func PositionWeights(size int) []int {
	cachedWeights.mu.Lock()
	defer cachedWeights.mu.Unlock()
	if weights, ok := cachedWeights.weights[size]; ok {
		return weights
	}
	weights := buildWeights(size)
	cachedWeights.weights[size] = weights
	return weights
}

func buildWeights(size int) []int {
	weights := make([]int, size*size)
	last := size - 1
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			weights[y*size+x] = squareWeight(x, y, last)
		}
	}
	return weights
}

func squareWeight(x, y, last int) int {
	onEdgeX := x == 0 || x == last
	onEdgeY := y == 0 || y == last
	if onEdgeX && onEdgeY {
		return weightCorner
	}
	nextToEdgeX := x == 1 || x == last-1
	nextToEdgeY := y == 1 || y == last-1
	if nextToEdgeX && nextToEdgeY {
		return weightCornerDiag
	}
	if onEdgeX || onEdgeY {
		return weightEdge
	}
	return weightInterior
}

// EvaluateBoard scores a position for forPlayer: weight sum over their discs
// minus weight sum over the opponent's. Antisymmetric between the players.
func EvaluateBoard(board Board, forPlayer PlayerColor) int {
	weights := PositionWeights(board.Size())
	mine := CellFromPlayer(forPlayer)
	theirs := CellFromPlayer(otherPlayer(forPlayer))
	score := 0
	for idx, cell := range board.cells {
		switch cell {
		case mine:
			score += weights[idx]
		case theirs:
			score -= weights[idx]
		case CellEmpty:
		default:
			panic(fmt.Sprintf("board: corrupt cell value %d at index %d", cell, idx))
		}
	}
	return score
}
