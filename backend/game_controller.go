package main

import (
	"sync"

	"github.com/google/uuid"
)

// GameController serializes all access to the session. The HTTP handlers,
// the tick loop, and the cache API all come through here.
type GameController struct {
	mu        sync.Mutex
	game      Game
	gameID    string
	tt        *TranspositionTable
	ttSize    int
	ttBuckets int
}

// GameSnapshot is one consistent view of the session for presentation.
type GameSnapshot struct {
	GameID      string
	State       GameState
	Settings    GameSettings
	Log         []MoveLogEntry
	AiThinking  bool
	CanUndo     bool
	TurnStartMs int64
}

func NewGameController(settings GameSettings) *GameController {
	config := GetConfig()
	gc := &GameController{
		tt:        NewTranspositionTable(uint64(config.AiTtSize), config.AiTtBuckets),
		ttSize:    config.AiTtSize,
		ttBuckets: config.AiTtBuckets,
	}
	gc.game = NewGame(settings, gc.tt)
	return gc
}

// StartGame begins a fresh session: the table is emptied, a new session id
// is issued, and the starting position becomes playable.
func (gc *GameController) StartGame(settings GameSettings) string {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.tt.Clear()
	gc.gameID = uuid.NewString()
	gc.game.Reset(settings)
	gc.game.Start()
	return gc.gameID
}

// StopGame abandons the session, keeping its settings for the next one.
func (gc *GameController) StopGame() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.gameID = ""
	gc.game.Reset(gc.game.settings)
}

func (gc *GameController) ApplyHumanMove(move Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.TryApplyMove(move)
}

// QueueHumanMove stages a move to be applied on the next tick. Used by the
// websocket path, where the caller does not wait for a verdict.
func (gc *GameController) QueueHumanMove(move Move) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SubmitHumanMove(move)
}

func (gc *GameController) UndoMove() (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Undo()
}

func (gc *GameController) Tick(analysis AnalysisSink) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick(analysis)
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.settings
}

func (gc *GameController) MoveLog() []MoveLogEntry {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.MoveLog()
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) Snapshot() GameSnapshot {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return GameSnapshot{
		GameID:      gc.gameID,
		State:       gc.game.State(),
		Settings:    gc.game.settings,
		Log:         gc.game.MoveLog(),
		AiThinking:  gc.game.AiThinking(),
		CanUndo:     gc.game.CanUndo(),
		TurnStartMs: gc.game.TurnStartedAtMs(),
	}
}

// UpdateSettings swaps the seat and difficulty setup. With reset the whole
// session restarts on the new settings; without it the players are rebuilt
// in place, the position stays, and the board size cannot change.
func (gc *GameController) UpdateSettings(update GameSettings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		gc.game.Reset(update)
		return
	}
	update.BoardSize = gc.game.settings.BoardSize
	gc.game.settings = update
	gc.game.rules = NewRules(update)
	gc.game.createPlayers()
}

// ApplyConfig rebuilds the table when its geometry changed. Players are
// recreated so every AI seat holds the new table.
func (gc *GameController) ApplyConfig(config Config) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if config.AiTtSize == gc.ttSize && config.AiTtBuckets == gc.ttBuckets {
		return
	}
	gc.ttSize = config.AiTtSize
	gc.ttBuckets = config.AiTtBuckets
	gc.tt = NewTranspositionTable(uint64(config.AiTtSize), config.AiTtBuckets)
	gc.game.tt = gc.tt
	gc.game.createPlayers()
}

// TT exposes the session table to the cache endpoints.
func (gc *GameController) TT() *TranspositionTable {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.tt
}
