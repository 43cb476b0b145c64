package main

import "sync"

const zobristMaxDepth = 64

// zobristSeed anchors every per-size table. Snapshots of search results are
// only valid against tables grown from the same seed.
const zobristSeed = uint64(0x9e3779b97f4a7c15)

type ZobristTable struct {
	size  int
	cells []uint64
	side  uint64
	root  uint64
	depth [zobristMaxDepth]uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*ZobristTable)}

func GetZobrist(size int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: zobristSeed ^ uint64(size)}
	table := &ZobristTable{size: size, cells: make([]uint64, size*size*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	table.side = rng.next()
	table.root = rng.next()
	for i := range table.depth {
		table.depth[i] = rng.next()
	}
	zobristTables.tables[size] = table
	return table
}

func (z *ZobristTable) stone(x, y int, player PlayerColor) uint64 {
	return z.stoneIndex(y*z.size+x, player)
}

func (z *ZobristTable) stoneIndex(idx int, player PlayerColor) uint64 {
	i := idx * 2
	if player == PlayerWhite {
		i++
	}
	return z.cells[i]
}

// RootKey separates table entries computed for opposite root perspectives.
// An ai-vs-ai session shares one table; without this a score searched for
// Black would be served, sign-flipped, to White.
func (z *ZobristTable) RootKey(root PlayerColor) uint64 {
	if root == PlayerWhite {
		return z.root
	}
	return 0
}

// DepthKey folds the remaining search depth into a table key, so values
// computed at different remaining depths never answer for each other.
func (z *ZobristTable) DepthKey(depth int) uint64 {
	return z.depth[depth]
}

func (z *ZobristTable) ComputeHash(board Board, toMove PlayerColor) uint64 {
	var hash uint64
	for idx, cell := range board.cells {
		if cell == CellEmpty {
			continue
		}
		player := PlayerBlack
		if cell == CellWhite {
			player = PlayerWhite
		}
		hash ^= z.stoneIndex(idx, player)
	}
	if toMove == PlayerWhite {
		hash ^= z.side
	}
	return hash
}

// UpdateHashAfterMove folds one applied move into state.Hash: the placed
// disc, one XOR-out/XOR-in pair per flipped disc, and the side key. Call it
// after the board and ToMove have been updated; player is the mover.
func UpdateHashAfterMove(state *GameState, move Move, player PlayerColor, flips []int) {
	z := GetZobrist(state.Board.Size())
	hash := state.Hash
	if player == PlayerWhite {
		hash ^= z.side
	}
	hash ^= z.stone(move.X, move.Y, player)
	opp := otherPlayer(player)
	for _, idx := range flips {
		hash ^= z.stoneIndex(idx, opp)
		hash ^= z.stoneIndex(idx, player)
	}
	if state.ToMove == PlayerWhite {
		hash ^= z.side
	}
	state.Hash = hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
