package main

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// AIMoveResult is what a finished search hands back to the game loop. Ok is
// false when the side had no legal move and passes.
type AIMoveResult struct {
	Move      Move
	Ok        bool
	Score     int
	Depth     int
	Nodes     int64
	ElapsedMs int64
}

type AIPlayer struct {
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	discard    atomic.Bool
	result     AIMoveResult

	difficulty Difficulty
	dynamic    bool
	tt         *TranspositionTable
}

func NewAIPlayer(difficulty Difficulty, dynamicDepth bool, tt *TranspositionTable) *AIPlayer {
	return &AIPlayer{
		difficulty: difficulty,
		dynamic:    dynamicDepth,
		tt:         tt,
	}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove searches synchronously. The game loop prefers StartThinking and
// polls; this path serves the cases that want an answer in place.
func (a *AIPlayer) ChooseMove(state GameState, rules Rules) Move {
	config := GetConfig()
	stats := &SearchStats{}
	start := time.Now()
	settings := AIScoreSettings{
		Depth:        a.difficulty.Depth(),
		DynamicDepth: a.dynamic,
		BoardSize:    state.Board.Size(),
		Player:       state.ToMove,
		TT:           a.tt,
		Config:       config,
		Stats:        stats,
	}
	move, ok := BestMove(state, rules, settings)
	if config.AiLogSearchStats {
		logSearchStats("choose", stats, settings, time.Since(start))
	}
	if !ok {
		return PassMove()
	}
	return move
}

// StartThinking launches the search on a worker goroutine over a cloned
// state. The search runs to exhaustion; DiscardThinking only drops its
// answer, it never interrupts the worker.
func (a *AIPlayer) StartThinking(state GameState, rules Rules, progress AnalysisSink) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)
	a.discard.Store(false)

	stateCopy := state.Clone()
	rulesCopy := rules
	done := make(chan struct{})
	a.workerDone = done
	config := GetConfig()
	go func() {
		defer close(done)
		stats := &SearchStats{}
		start := time.Now()
		settings := AIScoreSettings{
			Depth:        a.difficulty.Depth(),
			DynamicDepth: a.dynamic,
			BoardSize:    stateCopy.Board.Size(),
			Player:       stateCopy.ToMove,
			TT:           a.tt,
			Config:       config,
			Stats:        stats,
			Progress:     progress,
		}
		scores := ScoreBoard(stateCopy, rulesCopy, settings)
		move, ok := BestMoveFromScores(scores)
		elapsed := time.Since(start)
		if config.AiLogSearchStats {
			logSearchStats("think", stats, settings, elapsed)
		}
		if a.discard.Load() {
			a.moveReady.Store(false)
			a.thinking.Store(false)
			return
		}
		result := AIMoveResult{
			Move:      move,
			Ok:        ok,
			Depth:     stats.Depth,
			Nodes:     stats.Nodes,
			ElapsedMs: elapsed.Milliseconds(),
		}
		for _, s := range scores {
			if s.Move.Equals(move) {
				result.Score = s.Score
				break
			}
		}
		if progress != nil && ok {
			progress.PublishAnalysis(AnalysisEvent{
				Move:      move,
				Notation:  move.Notation(),
				Score:     result.Score,
				Depth:     result.Depth,
				Nodes:     result.Nodes,
				Player:    playerToInt(settings.Player),
				ElapsedMs: result.ElapsedMs,
				Final:     true,
			})
		}
		a.moveMutex.Lock()
		a.result = result
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() AIMoveResult {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.result
}

// DiscardThinking is called on reset and undo: whatever the worker is
// computing belongs to a position that no longer exists.
func (a *AIPlayer) DiscardThinking() {
	a.discard.Store(true)
	a.moveReady.Store(false)
}

func logSearchStats(tag string, stats *SearchStats, settings AIScoreSettings, elapsed time.Duration) {
	if stats == nil {
		return
	}
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	ttHitRate := 0.0
	if stats.TTProbes > 0 {
		ttHitRate = float64(stats.TTHits) * 100.0 / float64(stats.TTProbes)
	}
	ttSize := 0
	if settings.TT != nil {
		ttSize = settings.TT.Count()
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	fmt.Printf("[ai:%s] t=%dms depth=%d nodes=%d leaves=%d nps=%.0f tt_size=%d tt_probe=%d tt_hit=%d tt_hit_rate=%.1f%% tt_store=%d cutoffs=%d mem_alloc=%s\n",
		tag,
		elapsed.Milliseconds(),
		stats.Depth,
		stats.Nodes,
		stats.Leaves,
		nps,
		ttSize,
		stats.TTProbes,
		stats.TTHits,
		ttHitRate,
		stats.TTStores,
		stats.Cutoffs,
		formatBytes(mem.Alloc),
	)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(n)/float64(div), "KMGTPE"[exp])
}
