package main

// MoveLogEntry is one display-log line: who played where, with the metadata
// the presentation layer shows next to it.
type MoveLogEntry struct {
	Move      Move        `json:"move"`
	Player    PlayerColor `json:"player"`
	Notation  string      `json:"notation"`
	Flipped   int         `json:"flipped"`
	ElapsedMs int64       `json:"elapsed_ms"`
	IsAi      bool        `json:"is_ai"`
	Depth     int         `json:"depth,omitempty"`
}

// GameRecord owns the undo stack and the move log derived from it. The stack
// always holds the initial position plus one snapshot per applied move;
// snapshots and log truncate together on undo. Passes place no disc and are
// not recorded.
type GameRecord struct {
	snapshots []GameState
	log       []MoveLogEntry
}

func (r *GameRecord) Reset(initial GameState) {
	r.snapshots = r.snapshots[:0]
	r.log = r.log[:0]
	r.snapshots = append(r.snapshots, initial.Clone())
}

func (r *GameRecord) Push(after GameState, entry MoveLogEntry) {
	r.snapshots = append(r.snapshots, after.Clone())
	r.log = append(r.log, entry)
}

func (r GameRecord) CanUndo() bool {
	return len(r.snapshots) > 1
}

// Undo pops the newest snapshot and returns the one before it. false means
// only the initial position remains.
func (r *GameRecord) Undo() (GameState, bool) {
	if len(r.snapshots) <= 1 {
		return GameState{}, false
	}
	r.snapshots = r.snapshots[:len(r.snapshots)-1]
	r.log = r.log[:len(r.log)-1]
	return r.snapshots[len(r.snapshots)-1].Clone(), true
}

// Size is the number of applied moves, not counting the initial snapshot.
func (r GameRecord) Size() int {
	return len(r.log)
}

func (r GameRecord) Log() []MoveLogEntry {
	return append([]MoveLogEntry(nil), r.log...)
}
