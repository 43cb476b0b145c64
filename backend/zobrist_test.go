package main

import "testing"

func TestComputeHashDependsOnSideToMove(t *testing.T) {
	state := DefaultGameState(DefaultGameSettings())
	z := GetZobrist(8)

	black := z.ComputeHash(state.Board, PlayerBlack)
	white := z.ComputeHash(state.Board, PlayerWhite)
	if black == white {
		t.Fatalf("expected the side to move to change the hash")
	}
	if white != black^z.side {
		t.Fatalf("expected the side key to be a single xor, got %#x vs %#x", white, black^z.side)
	}
}

func TestZobristTablesAreCachedPerSize(t *testing.T) {
	first := GetZobrist(8)
	second := GetZobrist(8)
	if first != second {
		t.Fatalf("expected one table per board size")
	}
	other := GetZobrist(6)
	if other == first {
		t.Fatalf("expected distinct tables for distinct sizes")
	}
	if other.side == first.side {
		t.Fatalf("expected per-size tables to draw from distinct streams")
	}
}

func TestRootKeyOnlyMarksWhitePerspective(t *testing.T) {
	z := GetZobrist(8)
	if z.RootKey(PlayerBlack) != 0 {
		t.Fatalf("expected the black perspective to be the unmarked one")
	}
	if z.RootKey(PlayerWhite) == 0 {
		t.Fatalf("expected a non-zero white perspective key")
	}
	if z.RootKey(PlayerWhite) != z.root {
		t.Fatalf("expected RootKey to expose the root key")
	}
}

func TestDepthKeysAreDistinct(t *testing.T) {
	z := GetZobrist(8)
	seen := map[uint64]int{}
	for depth := 0; depth < 10; depth++ {
		key := z.DepthKey(depth)
		if prev, ok := seen[key]; ok {
			t.Fatalf("depth %d and %d share key %#x", prev, depth, key)
		}
		seen[key] = depth
	}
}

func TestUpdateHashMatchesRecomputeAfterMove(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.recomputeHash()

	move := Move{X: 3, Y: 2}
	flips := rules.FindFlips(state.Board, move, CellBlack)
	if len(flips) != 1 {
		t.Fatalf("expected D3 to flip one disc, got %d", len(flips))
	}
	state.Board.Set(move.X, move.Y, CellBlack)
	for _, idx := range flips {
		state.Board.cells[idx] = CellBlack
	}
	state.ToMove = PlayerWhite
	UpdateHashAfterMove(&state, move, PlayerBlack, flips)

	want := GetZobrist(8).ComputeHash(state.Board, PlayerWhite)
	if state.Hash != want {
		t.Fatalf("expected incremental hash %#x, got %#x", want, state.Hash)
	}
}

func TestUpdateHashWhenMoverKeepsTheTurn(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.recomputeHash()

	move := Move{X: 3, Y: 2}
	flips := rules.FindFlips(state.Board, move, CellBlack)
	state.Board.Set(move.X, move.Y, CellBlack)
	for _, idx := range flips {
		state.Board.cells[idx] = CellBlack
	}
	UpdateHashAfterMove(&state, move, PlayerBlack, flips)

	want := GetZobrist(8).ComputeHash(state.Board, PlayerBlack)
	if state.Hash != want {
		t.Fatalf("expected the side key to stay clear when the turn stays, got %#x vs %#x", state.Hash, want)
	}
}
