package main

import "testing"

func TestResetPlacesFourCentralDiscs(t *testing.T) {
	board := NewBoard(8)
	if got := board.At(3, 3); got != CellWhite {
		t.Fatalf("expected White at (3,3), got %s", got)
	}
	if got := board.At(4, 4); got != CellWhite {
		t.Fatalf("expected White at (4,4), got %s", got)
	}
	if got := board.At(4, 3); got != CellBlack {
		t.Fatalf("expected Black at (4,3), got %s", got)
	}
	if got := board.At(3, 4); got != CellBlack {
		t.Fatalf("expected Black at (3,4), got %s", got)
	}
	black, white := board.CountDiscs()
	if black != 2 || white != 2 {
		t.Fatalf("expected starting count 2-2, got %d-%d", black, white)
	}
	if got := board.CountEmpty(); got != 60 {
		t.Fatalf("expected 60 empty cells, got %d", got)
	}
}

func TestResetCentersScaleWithBoardSize(t *testing.T) {
	for _, size := range []int{6, 10, 20} {
		board := NewBoard(size)
		mid := size / 2
		if board.At(mid-1, mid-1) != CellWhite || board.At(mid, mid) != CellWhite {
			t.Fatalf("size %d: expected White on the main diagonal centers", size)
		}
		if board.At(mid, mid-1) != CellBlack || board.At(mid-1, mid) != CellBlack {
			t.Fatalf("size %d: expected Black on the anti-diagonal centers", size)
		}
		black, white := board.CountDiscs()
		if black != 2 || white != 2 {
			t.Fatalf("size %d: expected 2-2, got %d-%d", size, black, white)
		}
	}
}

func TestSetAndRemove(t *testing.T) {
	board := NewBoard(6)
	board.Set(0, 0, CellBlack)
	if board.At(0, 0) != CellBlack {
		t.Fatalf("expected Black at (0,0) after Set")
	}
	board.Remove(0, 0)
	if !board.IsEmpty(0, 0) {
		t.Fatalf("expected (0,0) empty after Remove")
	}
	if board.IsEmpty(-1, 0) {
		t.Fatalf("expected out-of-bounds cell to not report empty")
	}
}

func TestAtPanicsOutsideGrid(t *testing.T) {
	board := NewBoard(8)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-bounds access")
		}
	}()
	board.At(8, 0)
}

func TestCloneIsIndependent(t *testing.T) {
	board := NewBoard(8)
	clone := board.Clone()
	clone.Set(0, 0, CellBlack)
	if board.At(0, 0) != CellEmpty {
		t.Fatalf("expected original board untouched by clone mutation")
	}
}
