package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// pocketGameSettings and pocketGame lay out a hand-built 6x6 midgame used by
// the pass and termination tests: Black to move with exactly two legal moves,
// (4,0) and (3,3), after which White is walled in.
func pocketGame(t *testing.T) *Game {
	t.Helper()
	settings := DefaultGameSettings()
	settings.BoardSize = 6
	settings.BlackType = PlayerHuman
	settings.WhiteType = PlayerHuman

	game := NewGame(settings, nil)
	game.Start()

	board := emptyBoard(6)
	board.Set(0, 0, CellWhite)
	board.Set(3, 0, CellWhite)
	board.Set(2, 3, CellWhite)
	board.Set(1, 0, CellBlack)
	board.Set(2, 0, CellBlack)
	board.Set(5, 0, CellBlack)
	board.Set(0, 3, CellBlack)
	board.Set(1, 3, CellBlack)

	game.state.Board = board
	game.state.ToMove = PlayerBlack
	game.state.recomputeHash()
	game.record.Reset(game.state)
	return &game
}

func TestStartMakesGameRunning(t *testing.T) {
	settings := DefaultGameSettings()
	game := NewGame(settings, nil)
	if game.State().Status != StatusNotStarted {
		t.Fatalf("expected fresh game to be not started")
	}
	if ok, reason := game.TryApplyMove(Move{X: 3, Y: 2}); ok || reason != "game not running" {
		t.Fatalf("expected move rejection before start, got ok=%t reason=%q", ok, reason)
	}
	game.Start()
	if game.State().Status != StatusRunning {
		t.Fatalf("expected running status after start")
	}
}

func TestIllegalMoveReportsReason(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BlackType = PlayerHuman
	settings.WhiteType = PlayerHuman
	game := NewGame(settings, nil)
	game.Start()

	ok, reason := game.TryApplyMove(Move{X: 0, Y: 0})
	if ok {
		t.Fatalf("expected A1 to be illegal on the opening position")
	}
	if !strings.Contains(reason, "flips no discs") {
		t.Fatalf("expected flip reason, got %q", reason)
	}
	if game.State().LastMessage != reason {
		t.Fatalf("expected rejection message kept on the state")
	}
	if game.MoveCount() != 0 {
		t.Fatalf("expected no snapshot for a rejected move")
	}
}

func TestApplyMoveAdvancesTurnAndLog(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BlackType = PlayerHuman
	settings.WhiteType = PlayerHuman
	game := NewGame(settings, nil)
	game.Start()

	if ok, reason := game.TryApplyMove(Move{X: 3, Y: 2}); !ok {
		t.Fatalf("expected D3 to apply, got %q", reason)
	}
	state := game.State()
	if state.ToMove != PlayerWhite {
		t.Fatalf("expected White to move after Black opens")
	}
	if state.Board.At(3, 3) != CellBlack {
		t.Fatalf("expected the flanked disc at (3,3) flipped to Black")
	}
	if !state.HasLastMove || !state.LastMove.Equals(Move{X: 3, Y: 2}) {
		t.Fatalf("expected last move D3, got %+v", state.LastMove)
	}

	log := game.MoveLog()
	if len(log) != 1 {
		t.Fatalf("expected one log entry, got %d", len(log))
	}
	entry := log[0]
	if entry.Notation != "D3" || entry.Player != PlayerBlack || entry.Flipped != 1 {
		t.Fatalf("unexpected log entry %+v", entry)
	}
	if entry.IsAi {
		t.Fatalf("expected a human move in the log")
	}
}

func TestUndoRestoresExactSnapshot(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BlackType = PlayerHuman
	settings.WhiteType = PlayerHuman
	game := NewGame(settings, nil)
	game.Start()

	initial := game.State()
	if ok, _ := game.TryApplyMove(Move{X: 3, Y: 2}); !ok {
		t.Fatalf("expected D3 to apply")
	}
	afterFirst := game.State()
	if ok, _ := game.TryApplyMove(Move{X: 2, Y: 2}); !ok {
		t.Fatalf("expected C3 to apply for White")
	}

	if ok, reason := game.Undo(); !ok {
		t.Fatalf("expected undo to succeed, got %q", reason)
	}
	if diff := cmp.Diff(afterFirst, game.State(), cmp.AllowUnexported(Board{})); diff != "" {
		t.Fatalf("state after undo mismatch (-want +got):\n%s", diff)
	}

	if ok, _ := game.Undo(); !ok {
		t.Fatalf("expected undo to the starting position")
	}
	if diff := cmp.Diff(initial, game.State(), cmp.AllowUnexported(Board{})); diff != "" {
		t.Fatalf("initial state after undo mismatch (-want +got):\n%s", diff)
	}
	if game.State().Status != StatusRunning {
		t.Fatalf("expected the restored starting position to stay playable")
	}

	ok, reason := game.Undo()
	if ok || reason != "nothing to undo" {
		t.Fatalf("expected undo exhaustion, got ok=%t reason=%q", ok, reason)
	}

	if ok, _ := game.TryApplyMove(Move{X: 3, Y: 2}); !ok {
		t.Fatalf("expected the game to continue after rewinding to the start")
	}
}

func TestStuckOpponentPassesImplicitly(t *testing.T) {
	game := pocketGame(t)

	if ok, reason := game.TryApplyMove(Move{X: 4, Y: 0}); !ok {
		t.Fatalf("expected (4,0) to apply, got %q", reason)
	}
	state := game.State()
	if state.ToMove != PlayerBlack {
		t.Fatalf("expected Black to play again after White's pass, got %s", state.ToMove)
	}
	if state.LastMessage != "White has no legal move and passes" {
		t.Fatalf("unexpected pass notice %q", state.LastMessage)
	}
	if state.Status != StatusRunning {
		t.Fatalf("expected the game to continue through a pass")
	}
	if game.MoveCount() != 1 {
		t.Fatalf("expected the pass to consume no snapshot, got %d entries", game.MoveCount())
	}
}

func TestGameEndsWhenNeitherSideCanMove(t *testing.T) {
	game := pocketGame(t)

	if ok, _ := game.TryApplyMove(Move{X: 4, Y: 0}); !ok {
		t.Fatalf("expected (4,0) to apply")
	}
	if ok, _ := game.TryApplyMove(Move{X: 3, Y: 3}); !ok {
		t.Fatalf("expected (3,3) to apply")
	}

	state := game.State()
	if state.Status != StatusBlackWon {
		t.Fatalf("expected Black to win when both sides are stuck, got %d", state.Status)
	}
	black, white := state.Board.CountDiscs()
	if black != 9 || white != 1 {
		t.Fatalf("expected final count 9-1, got %d-%d", black, white)
	}
	if ok, reason := game.TryApplyMove(Move{X: 5, Y: 5}); ok || reason != "game not running" {
		t.Fatalf("expected moves rejected after the game ended")
	}
}

func TestUndoRewindsThroughPass(t *testing.T) {
	game := pocketGame(t)
	before := game.State()

	if ok, _ := game.TryApplyMove(Move{X: 4, Y: 0}); !ok {
		t.Fatalf("expected (4,0) to apply")
	}
	if ok, _ := game.Undo(); !ok {
		t.Fatalf("expected undo to succeed")
	}
	if diff := cmp.Diff(before, game.State(), cmp.AllowUnexported(Board{})); diff != "" {
		t.Fatalf("state after undo mismatch (-want +got):\n%s", diff)
	}
}

func TestHumanMoveQueueAppliesOnTick(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BlackType = PlayerHuman
	settings.WhiteType = PlayerHuman
	game := NewGame(settings, nil)
	game.Start()

	if !game.CurrentPlayerIsHuman() {
		t.Fatalf("expected human to move first")
	}
	if !game.SubmitHumanMove(Move{X: 3, Y: 2}) {
		t.Fatalf("expected move to queue")
	}
	if game.MoveCount() != 0 {
		t.Fatalf("expected queued move to wait for the tick loop")
	}
	if !game.Tick(nil) {
		t.Fatalf("expected tick to apply the queued move")
	}
	if game.MoveCount() != 1 || game.State().ToMove != PlayerWhite {
		t.Fatalf("expected the queued move applied on tick")
	}
}
