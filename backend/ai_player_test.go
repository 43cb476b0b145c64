package main

import (
	"testing"
	"time"
)

func waitForMove(t *testing.T, ai *AIPlayer) AIMoveResult {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if ai.HasMoveReady() {
			return ai.TakeMove()
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("expected a search result within the deadline")
	return AIMoveResult{}
}

func TestChooseMoveReturnsOpeningMove(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Status = StatusRunning

	ai := NewAIPlayer(DifficultyEasy, false, nil)
	if ai.IsHuman() {
		t.Fatalf("expected an AI seat")
	}
	move := ai.ChooseMove(state, rules)
	if ok, reason := rules.IsLegal(state, move, PlayerBlack); !ok {
		t.Fatalf("expected a legal opening move, got %s (%s)", move.Notation(), reason)
	}
}

func TestChooseMovePassesWhenStuck(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 6
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Status = StatusRunning
	state.Board = emptyBoard(6)
	state.Board.Set(0, 0, CellWhite)
	state.Board.Set(1, 0, CellBlack)
	state.ToMove = PlayerBlack
	state.recomputeHash()

	ai := NewAIPlayer(DifficultyEasy, false, nil)
	if move := ai.ChooseMove(state, rules); !move.IsPass() {
		t.Fatalf("expected pass for a stuck side, got %s", move.Notation())
	}
}

func TestStartThinkingDeliversResult(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Status = StatusRunning

	ai := NewAIPlayer(DifficultyEasy, false, NewTranspositionTable(1<<10, 2))
	ai.StartThinking(state, rules, nil)
	result := waitForMove(t, ai)

	if !result.Ok {
		t.Fatalf("expected a move from the opening position")
	}
	if ok, reason := rules.IsLegal(state, result.Move, PlayerBlack); !ok {
		t.Fatalf("expected a legal move, got %s (%s)", result.Move.Notation(), reason)
	}
	if result.Depth != DifficultyEasy.Depth() {
		t.Fatalf("expected search depth %d, got %d", DifficultyEasy.Depth(), result.Depth)
	}
	if result.Nodes == 0 {
		t.Fatalf("expected the result to carry node counts")
	}
	if ai.HasMoveReady() {
		t.Fatalf("expected TakeMove to consume the result")
	}
}

func TestDiscardDropsPendingResult(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Status = StatusRunning

	ai := NewAIPlayer(DifficultyHard, false, NewTranspositionTable(1<<12, 2))
	ai.StartThinking(state, rules, nil)
	ai.DiscardThinking()

	deadline := time.Now().Add(5 * time.Second)
	for ai.IsThinking() && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if ai.IsThinking() {
		t.Fatalf("expected the worker to finish")
	}
	if ai.HasMoveReady() {
		t.Fatalf("expected the discarded answer to be dropped")
	}
}

func TestStartThinkingIgnoredWhileBusy(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Status = StatusRunning

	ai := NewAIPlayer(DifficultyMedium, false, NewTranspositionTable(1<<12, 2))
	ai.StartThinking(state, rules, nil)
	if !ai.IsThinking() {
		t.Skip("search finished before the second start could race it")
	}
	ai.StartThinking(state, rules, nil)
	result := waitForMove(t, ai)
	if !result.Ok {
		t.Fatalf("expected the original search to deliver")
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{512, "512B"},
		{2048, "2.0KB"},
		{5 << 20, "5.0MB"},
		{3 << 30, "3.0GB"},
	}
	for _, tc := range cases {
		if got := formatBytes(tc.n); got != tc.want {
			t.Fatalf("expected %q for %d, got %q", tc.want, tc.n, got)
		}
	}
}
