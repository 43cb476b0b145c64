package main

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Window sentinels. Far outside any reachable weight sum (a 20x20 board
// tops out around +-48k) and still storable as int32 in the table.
const (
	scoreNegInf = math.MinInt32
	scorePosInf = math.MaxInt32
)

// SearchStats aggregates counters for one decision episode. Parallel root
// workers fill private instances that are merged afterwards.
type SearchStats struct {
	Nodes    int64
	Leaves   int64
	TTProbes int64
	TTHits   int64
	TTStores int64
	Cutoffs  int64
	Depth    int
}

func (s *SearchStats) merge(other SearchStats) {
	s.Nodes += other.Nodes
	s.Leaves += other.Leaves
	s.TTProbes += other.TTProbes
	s.TTHits += other.TTHits
	s.TTStores += other.TTStores
	s.Cutoffs += other.Cutoffs
}

// AIScoreSettings parameterizes one decision episode.
type AIScoreSettings struct {
	Depth        int // configured depth; resolved through chooseDepth
	DynamicDepth bool
	BoardSize    int
	Player       PlayerColor // root perspective; scores are from this side
	TT           *TranspositionTable
	Config       Config
	Stats        *SearchStats
	Progress     AnalysisSink // optional live feed of root candidates
}

type MoveScore struct {
	Move  Move `json:"move"`
	Score int  `json:"score"`
}

// chooseDepth returns the configured depth, or a fill-ratio based one when
// dynamic depth is on: sparse boards search shallow, crowded boards deepen.
func chooseDepth(board Board, configured int, dynamic bool) int {
	if !dynamic {
		return configured
	}
	total := board.Size() * board.Size()
	occupied := total - board.CountEmpty()
	fill := float64(occupied) / float64(total)
	switch {
	case fill < 0.25:
		return 2
	case fill < 0.75:
		return 4
	default:
		return 6
	}
}

// BestMove picks the move for settings.Player on state. ok=false means the
// side has no legal move and the caller passes; it is never an error.
func BestMove(state GameState, rules Rules, settings AIScoreSettings) (Move, bool) {
	return BestMoveFromScores(ScoreBoard(state, rules, settings))
}

// BestMoveFromScores returns the first highest-scoring candidate. ScoreBoard
// emits candidates in weight-sorted order, so ties resolve to the earliest
// one deterministically.
func BestMoveFromScores(scores []MoveScore) (Move, bool) {
	if len(scores) == 0 {
		return Move{X: -1, Y: -1}, false
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[best].Score {
			best = i
		}
	}
	return scores[best].Move, true
}

// ScoreBoard evaluates every legal root move for settings.Player: candidates
// are sorted descending by square weight (stable, so equal weights keep
// row-major order) and each is searched once at depth-1 from the opponent's
// perspective with a full window. Full windows keep the candidates
// independent, which makes the parallel path return identical scores.
func ScoreBoard(state GameState, rules Rules, settings AIScoreSettings) []MoveScore {
	if settings.BoardSize <= 0 {
		settings.BoardSize = state.Board.Size()
	}
	configured := settings.Depth
	if configured <= 0 {
		configured = DifficultyMedium.Depth()
	}
	depth := chooseDepth(state.Board, configured, settings.DynamicDepth)
	if settings.Stats != nil {
		settings.Stats.Depth = depth
	}

	moves := rules.LegalMoves(state.Board, settings.Player)
	if len(moves) == 0 {
		return nil
	}
	weights := PositionWeights(settings.BoardSize)
	size := settings.BoardSize
	sort.SliceStable(moves, func(i, j int) bool {
		return weights[moves[i].Y*size+moves[i].X] > weights[moves[j].Y*size+moves[j].X]
	})

	if settings.TT != nil {
		settings.TT.NextGeneration()
	}

	workers := settings.Config.AiParallelWorkers
	if settings.Config.AiParallelRoot && workers > 1 && len(moves) > 1 {
		return scoreCandidatesParallel(state, rules, settings, moves, depth, workers)
	}
	return scoreCandidates(state, rules, settings, moves, depth)
}

func scoreCandidates(state GameState, rules Rules, settings AIScoreSettings, moves []Move, depth int) []MoveScore {
	ctx := newMinimaxContext(rules, settings)
	scratch := searchScratch(state, settings.Player)
	scores := make([]MoveScore, len(moves))
	var undo searchMoveUndo
	for i, move := range moves {
		if !applySearchMove(&scratch, rules, move, settings.Player, &undo) {
			panic(fmt.Sprintf("search: legal move %s failed to apply", move.Notation()))
		}
		value := ctx.minimax(&scratch, depth-1, false, scoreNegInf, scorePosInf)
		undoSearchMove(&scratch, undo)
		scores[i] = MoveScore{Move: move, Score: value}
		publishCandidate(settings, depth, i, len(moves), scores[i])
	}
	return scores
}

// scoreCandidatesParallel fans the root candidates over an errgroup. Every
// worker owns a cloned state; the table is shared and striped-locked.
func scoreCandidatesParallel(state GameState, rules Rules, settings AIScoreSettings, moves []Move, depth, workers int) []MoveScore {
	scores := make([]MoveScore, len(moves))
	workerStats := make([]SearchStats, len(moves))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, move := range moves {
		i, move := i, move
		g.Go(func() error {
			local := settings
			local.Stats = &workerStats[i]
			ctx := newMinimaxContext(rules, local)
			scratch := searchScratch(state, settings.Player)
			var undo searchMoveUndo
			if !applySearchMove(&scratch, rules, move, settings.Player, &undo) {
				panic(fmt.Sprintf("search: legal move %s failed to apply", move.Notation()))
			}
			value := ctx.minimax(&scratch, depth-1, false, scoreNegInf, scorePosInf)
			undoSearchMove(&scratch, undo)
			scores[i] = MoveScore{Move: move, Score: value}
			publishCandidate(local, depth, i, len(moves), scores[i])
			return nil
		})
	}
	_ = g.Wait()

	if settings.Stats != nil {
		for i := range workerStats {
			settings.Stats.merge(workerStats[i])
		}
	}
	return scores
}

// searchScratch clones the state and pins the side to move to the root
// player, rehashing if the caller handed us a board mid-pass.
func searchScratch(state GameState, player PlayerColor) GameState {
	scratch := state.Clone()
	if scratch.ToMove != player {
		scratch.ToMove = player
		scratch.recomputeHash()
	}
	return scratch
}

func publishCandidate(settings AIScoreSettings, depth, index, total int, score MoveScore) {
	if settings.Progress == nil {
		return
	}
	var nodes int64
	if settings.Stats != nil {
		nodes = settings.Stats.Nodes
	}
	settings.Progress.PublishAnalysis(AnalysisEvent{
		Move:      score.Move,
		Notation:  score.Move.Notation(),
		Score:     score.Score,
		Depth:     depth,
		Candidate: index + 1,
		Total:     total,
		Nodes:     nodes,
	})
}

type minimaxContext struct {
	rules    Rules
	settings AIScoreSettings
	zobrist  *ZobristTable
	weights  []int
	rootKey  uint64
}

func newMinimaxContext(rules Rules, settings AIScoreSettings) *minimaxContext {
	z := GetZobrist(settings.BoardSize)
	return &minimaxContext{
		rules:    rules,
		settings: settings,
		zobrist:  z,
		weights:  PositionWeights(settings.BoardSize),
		rootKey:  z.RootKey(settings.Player),
	}
}

func (ctx *minimaxContext) ttKey(hash uint64, depth int) uint64 {
	return hash ^ ctx.rootKey ^ ctx.zobrist.DepthKey(depth)
}

// minimax is a depth-limited alpha-beta search over the scratch state.
// Scores are always from the root player's perspective; maximizing holds
// exactly when the side to move is the root player. A side with no legal
// move passes implicitly: the turn flips and one depth unit is consumed,
// with no pass node emitted.
func (ctx *minimaxContext) minimax(state *GameState, depth int, maximizing bool, alpha, beta int) int {
	stats := ctx.settings.Stats
	if stats != nil {
		stats.Nodes++
	}

	if depth <= 0 || ctx.rules.IsTerminal(state.Board) {
		if stats != nil {
			stats.Leaves++
		}
		return EvaluateBoard(state.Board, ctx.settings.Player)
	}

	key := ctx.ttKey(state.Hash, depth)
	alphaOrig := alpha
	betaOrig := beta
	pvMove := Move{X: -1, Y: -1}
	if ctx.settings.TT != nil {
		if stats != nil {
			stats.TTProbes++
		}
		if entry, ok := ctx.settings.TT.Probe(key); ok {
			if stats != nil {
				stats.TTHits++
			}
			pvMove = entry.BestMove
			value := int(entry.Score)
			switch entry.Flag {
			case TTExact:
				return value
			case TTLower:
				if value > alpha {
					alpha = value
				}
			case TTUpper:
				if value < beta {
					beta = value
				}
			}
			if alpha >= beta {
				if stats != nil {
					stats.Cutoffs++
				}
				return value
			}
		}
	}

	mover := state.ToMove
	moves := ctx.rules.LegalMoves(state.Board, mover)
	if len(moves) == 0 {
		state.ToMove = otherPlayer(mover)
		state.Hash ^= ctx.zobrist.side
		value := ctx.minimax(state, depth-1, !maximizing, alpha, beta)
		state.ToMove = mover
		state.Hash ^= ctx.zobrist.side
		ctx.store(key, depth, value, alphaOrig, betaOrig, Move{X: -1, Y: -1})
		return value
	}

	ctx.orderMoves(moves, maximizing, pvMove)

	best := scoreNegInf
	if !maximizing {
		best = scorePosInf
	}
	bestMove := Move{X: -1, Y: -1}
	var undo searchMoveUndo
	for _, move := range moves {
		if !applySearchMove(state, ctx.rules, move, mover, &undo) {
			panic(fmt.Sprintf("search: legal move %s failed to apply", move.Notation()))
		}
		value := ctx.minimax(state, depth-1, !maximizing, alpha, beta)
		undoSearchMove(state, undo)

		if maximizing {
			if value > best {
				best = value
				bestMove = move
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
				bestMove = move
			}
			if best < beta {
				beta = best
			}
		}
		if beta <= alpha {
			if stats != nil {
				stats.Cutoffs++
			}
			break
		}
	}

	ctx.store(key, depth, best, alphaOrig, betaOrig, bestMove)
	return best
}

func (ctx *minimaxContext) store(key uint64, depth, value, alphaOrig, betaOrig int, best Move) {
	if ctx.settings.TT == nil {
		return
	}
	flag := TTExact
	if value <= alphaOrig {
		flag = TTUpper
	} else if value >= betaOrig {
		flag = TTLower
	}
	if ctx.settings.Stats != nil {
		ctx.settings.Stats.TTStores++
	}
	ctx.settings.TT.Store(key, depth, value, flag, best)
}

// orderMoves sorts by square weight, best first for the maximizer, worst
// first for the minimizer. Stable, so equal weights keep row-major order.
// A remembered table move, when present, jumps the queue.
func (ctx *minimaxContext) orderMoves(moves []Move, maximizing bool, pvMove Move) {
	weights := ctx.weights
	size := ctx.settings.BoardSize
	sort.SliceStable(moves, func(i, j int) bool {
		wi := weights[moves[i].Y*size+moves[i].X]
		wj := weights[moves[j].Y*size+moves[j].X]
		if maximizing {
			return wi > wj
		}
		return wi < wj
	})
	if !pvMove.IsValid(size) {
		return
	}
	for i, move := range moves {
		if move.Equals(pvMove) {
			copy(moves[1:i+1], moves[:i])
			moves[0] = pvMove
			break
		}
	}
}

// searchMoveUndo records what applySearchMove changed, so the scratch state
// rolls back without cloning. The flips buffer is reused across moves at the
// same recursion level.
type searchMoveUndo struct {
	move        Move
	player      PlayerColor
	flips       []int
	prevToMove  PlayerColor
	prevHash    uint64
	prevHasLast bool
	prevLast    Move
}

func applySearchMove(state *GameState, rules Rules, move Move, player PlayerColor, undo *searchMoveUndo) bool {
	cell := CellFromPlayer(player)
	flips := rules.FindFlipsInto(state.Board, move, cell, undo.flips)
	undo.flips = flips
	if len(flips) == 0 {
		return false
	}
	undo.move = move
	undo.player = player
	undo.prevToMove = state.ToMove
	undo.prevHash = state.Hash
	undo.prevHasLast = state.HasLastMove
	undo.prevLast = state.LastMove

	state.Board.Set(move.X, move.Y, cell)
	for _, idx := range flips {
		state.Board.cells[idx] = cell
	}
	state.ToMove = otherPlayer(player)
	state.HasLastMove = true
	state.LastMove = move
	UpdateHashAfterMove(state, move, player, flips)
	return true
}

func undoSearchMove(state *GameState, undo searchMoveUndo) {
	opp := CellFromPlayer(otherPlayer(undo.player))
	state.Board.Remove(undo.move.X, undo.move.Y)
	for _, idx := range undo.flips {
		state.Board.cells[idx] = opp
	}
	state.ToMove = undo.prevToMove
	state.Hash = undo.prevHash
	state.HasLastMove = undo.prevHasLast
	state.LastMove = undo.prevLast
}
