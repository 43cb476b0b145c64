package main

import (
	"fmt"
	"time"
)

type Game struct {
	settings    GameSettings
	rules       Rules
	state       GameState
	record      GameRecord
	blackPlayer IPlayer
	whitePlayer IPlayer
	tt          *TranspositionTable
	turnStart   time.Time
}

func NewGame(settings GameSettings, tt *TranspositionTable) Game {
	g := Game{tt: tt}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.discardThinkers()
	g.settings = settings
	g.rules = NewRules(settings)
	g.state.Reset(settings)
	g.record.Reset(g.state)
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

// Start flips the session to running and re-anchors the undo stack so the
// oldest snapshot is the playable starting position.
func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.record.Reset(g.state)
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) MoveLog() []MoveLogEntry {
	return g.record.Log()
}

func (g *Game) MoveCount() int {
	return g.record.Size()
}

func (g *Game) CanUndo() bool {
	return g.record.CanUndo()
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

func (g *Game) TryApplyMove(move Move) (bool, string) {
	return g.applyMove(move, 0)
}

// applyMove validates and commits one placement, flips the captured run,
// resolves whose turn is next, and snapshots the result for undo. A stuck
// opponent is passed over with a notice; when neither side can move the
// session ends on disc count.
func (g *Game) applyMove(move Move, searchDepth int) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	mover := g.state.ToMove
	ok, reason := g.rules.IsLegalDefault(g.state, move)
	if !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	elapsedMs := time.Since(g.turnStart).Milliseconds()

	cell := CellFromPlayer(mover)
	flips := g.rules.FindFlips(g.state.Board, move, cell)
	g.state.Board.Set(move.X, move.Y, cell)
	for _, idx := range flips {
		g.state.Board.cells[idx] = cell
	}
	g.state.LastMove = move
	g.state.HasLastMove = true

	opponent := otherPlayer(mover)
	switch {
	case g.rules.HasLegalMove(g.state.Board, opponent):
		g.state.ToMove = opponent
	case g.rules.HasLegalMove(g.state.Board, mover):
		// Passes consume no snapshot; the turn simply stays put.
		g.state.ToMove = mover
		g.state.LastMessage = fmt.Sprintf("%s has no legal move and passes", opponent)
		fmt.Printf("[game] %s has no legal move, %s plays again\n", opponent, mover)
	default:
		g.state.ToMove = opponent
		g.state.Status = g.rules.Winner(g.state.Board)
		g.logResult()
	}
	UpdateHashAfterMove(&g.state, move, mover, flips)

	entry := MoveLogEntry{
		Move:      move,
		Player:    mover,
		Notation:  move.Notation(),
		Flipped:   len(flips),
		ElapsedMs: elapsedMs,
		IsAi:      isAiMove,
		Depth:     searchDepth,
	}
	g.record.Push(g.state, entry)
	g.logMovePlayed(entry)
	g.turnStart = time.Now()
	return true, ""
}

// Undo rewinds to the snapshot before the last applied move. Any in-flight
// search belongs to the abandoned position, so its answer is dropped.
func (g *Game) Undo() (bool, string) {
	g.discardThinkers()
	state, ok := g.record.Undo()
	if !ok {
		return false, "nothing to undo"
	}
	g.state = state
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances the session one step: applies a queued human move, collects
// a finished search, or starts one. Returns whether a move was applied.
func (g *Game) Tick(analysis AnalysisSink) bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if player.IsHuman() {
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingMove() {
			move := human.TakePendingMove()
			applied, _ := g.TryApplyMove(move)
			return applied
		}
		return false
	}
	ai, ok := player.(*AIPlayer)
	if ok {
		if ai.HasMoveReady() {
			result := ai.TakeMove()
			if !result.Ok {
				return false
			}
			applied, _ := g.applyMove(result.Move, result.Depth)
			return applied
		}
		if !ai.IsThinking() {
			ai.StartThinking(g.state.Clone(), g.rules, analysis)
		}
		return false
	}
	move := player.ChooseMove(g.state.Clone(), g.rules)
	if move.IsPass() {
		return false
	}
	applied, _ := g.TryApplyMove(move)
	return applied
}

func (g *Game) SubmitHumanMove(move Move) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == PlayerBlack {
		return g.blackPlayer
	}
	return g.whitePlayer
}

// createPlayers wires both seats. AI seats share the session table; root
// perspective is baked into the search keys, so black and white entries
// never collide.
func (g *Game) createPlayers() {
	if g.settings.BlackType == PlayerHuman {
		g.blackPlayer = NewHumanPlayer()
	} else {
		g.blackPlayer = NewAIPlayer(g.settings.Difficulty, g.settings.DynamicDepth, g.tt)
	}
	if g.settings.WhiteType == PlayerHuman {
		g.whitePlayer = NewHumanPlayer()
	} else {
		g.whitePlayer = NewAIPlayer(g.settings.Difficulty, g.settings.DynamicDepth, g.tt)
	}
}

// discardThinkers drops every result that belongs to an abandoned position:
// in-flight search answers and staged human moves alike.
func (g *Game) discardThinkers() {
	if ai, ok := g.blackPlayer.(*AIPlayer); ok {
		ai.DiscardThinking()
	}
	if ai, ok := g.whitePlayer.(*AIPlayer); ok {
		ai.DiscardThinking()
	}
	if human, ok := g.blackPlayer.(*HumanPlayer); ok {
		human.ClearPending()
	}
	if human, ok := g.whitePlayer.(*HumanPlayer); ok {
		human.ClearPending()
	}
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAI {
			return "AI"
		}
		return "Human"
	}
	fmt.Printf("[game] new %dx%d game: Black (%s) vs White (%s), difficulty=%s dynamic=%t\n",
		g.settings.BoardSize, g.settings.BoardSize,
		label(g.settings.BlackType), label(g.settings.WhiteType),
		g.settings.Difficulty, g.settings.DynamicDepth)
}

func (g *Game) logMovePlayed(entry MoveLogEntry) {
	tag := "human"
	if entry.IsAi {
		tag = fmt.Sprintf("ai depth=%d", entry.Depth)
	}
	black, white := g.rules.Score(g.state.Board)
	fmt.Printf("[game] %s plays %s flipping %d (%s, %dms) score %d-%d\n",
		entry.Player, entry.Notation, entry.Flipped, tag, entry.ElapsedMs, black, white)
}

func (g *Game) logResult() {
	black, white := g.rules.Score(g.state.Board)
	switch g.state.Status {
	case StatusBlackWon:
		fmt.Printf("[game] Black wins %d-%d\n", black, white)
	case StatusWhiteWon:
		fmt.Printf("[game] White wins %d-%d\n", white, black)
	case StatusDraw:
		fmt.Printf("[game] draw %d-%d\n", black, white)
	}
}
