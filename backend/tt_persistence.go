package main

import (
	"encoding/gob"
	"io"
	"log"
	"os"
	"path/filepath"
)

var dockerCacheDir = "/cache_logs"

const fnv64Offset = 1469598103934665603
const fnv64Prime = 1099511628211

// ttSnapshot is the on-disk form of the table. The fingerprint ties the
// entries to the board size, square weights, key scheme, and table geometry
// that produced them; a snapshot from any other setup never loads.
type ttSnapshot struct {
	Fingerprint uint64
	Size        int
	Buckets     int
	Entries     []TTEntry
}

func searchFingerprint(boardSize, ttSize, ttBuckets int) uint64 {
	hash := uint64(fnv64Offset)
	mix := func(value uint64) {
		for i := 0; i < 8; i++ {
			hash ^= uint64(byte(value >> (8 * i)))
			hash *= fnv64Prime
		}
	}
	mix(uint64(boardSize))
	mix(uint64(ttSize))
	mix(uint64(ttBuckets))
	mix(zobristSeed ^ uint64(boardSize))
	for _, w := range PositionWeights(boardSize) {
		mix(uint64(int64(w)))
	}
	return hash
}

func countValidTTEntries(entries []TTEntry) int {
	count := 0
	for _, entry := range entries {
		if entry.Valid {
			count++
		}
	}
	return count
}

// logCache respects the ai_log_cache switch; snapshot plumbing is chatty at
// every startup and shutdown otherwise.
func logCache(cfg Config, format string, args ...any) {
	if !cfg.AiLogCache {
		return
	}
	log.Printf("[ai:cache] "+format, args...)
}

// loadTTSnapshot restores persisted entries into tt. Mismatched fingerprints
// or geometry skip the restore rather than poisoning the table.
func loadTTSnapshot(cfg Config, boardSize int, tt *TranspositionTable) {
	if tt == nil || !cfg.AiEnableTtPersistence || cfg.AiTtPersistencePath == "" {
		logCache(cfg, "restored TT snapshot: 0 entries (disabled or no path)")
		return
	}
	path := resolveTTPersistencePath(cfg.AiTtPersistencePath)
	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logCache(cfg, "failed to open TT snapshot %s: %v", path, err)
			return
		}
		logCache(cfg, "restored TT snapshot: 0 entries (file not found: %s)", path)
		return
	}
	defer file.Close()

	var snapshot ttSnapshot
	if err := gob.NewDecoder(file).Decode(&snapshot); err != nil {
		if isEOFError(err) {
			file.Close()
			os.Remove(path)
			logCache(cfg, "removed truncated TT snapshot %s", path)
			return
		}
		logCache(cfg, "failed to decode TT snapshot %s: %v", path, err)
		return
	}
	want := searchFingerprint(boardSize, cfg.AiTtSize, cfg.AiTtBuckets)
	if snapshot.Fingerprint != want {
		logCache(cfg, "TT snapshot fingerprint %016x does not match current setup %016x; skipping", snapshot.Fingerprint, want)
		return
	}
	if snapshot.Size != cfg.AiTtSize || snapshot.Buckets != cfg.AiTtBuckets {
		logCache(cfg, "TT snapshot geometry (%d/%d) does not match current config (%d/%d); skipping",
			snapshot.Size, snapshot.Buckets, cfg.AiTtSize, cfg.AiTtBuckets)
		return
	}
	tt.loadEntries(snapshot.Entries)
	logCache(cfg, "restored TT snapshot from %s (%d/%d valid entries)",
		path, countValidTTEntries(snapshot.Entries), len(snapshot.Entries))
}

func saveTTSnapshot(cfg Config, boardSize int, tt *TranspositionTable) error {
	if tt == nil || !cfg.AiEnableTtPersistence || cfg.AiTtPersistencePath == "" {
		logCache(cfg, "stored TT snapshot: 0 entries (disabled or no path)")
		return nil
	}
	path := resolveTTPersistencePath(cfg.AiTtPersistencePath)
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logCache(cfg, "unable to create TT snapshot directory %s: %v", dir, err)
			return err
		}
	}
	entries := tt.snapshotEntries()
	file, err := os.Create(path)
	if err != nil {
		logCache(cfg, "failed to create TT snapshot %s: %v", path, err)
		return err
	}
	defer file.Close()
	snapshot := ttSnapshot{
		Fingerprint: searchFingerprint(boardSize, cfg.AiTtSize, cfg.AiTtBuckets),
		Size:        cfg.AiTtSize,
		Buckets:     cfg.AiTtBuckets,
		Entries:     entries,
	}
	if err := gob.NewEncoder(file).Encode(&snapshot); err != nil {
		logCache(cfg, "failed to encode TT snapshot %s: %v", path, err)
		return err
	}
	logCache(cfg, "stored TT snapshot to %s (%d/%d valid entries)",
		path, countValidTTEntries(entries), len(entries))
	return nil
}

func resolveTTPersistencePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if stat, err := os.Stat(dockerCacheDir); err == nil && stat.IsDir() {
		return filepath.Join(dockerCacheDir, path)
	}
	return path
}

func isEOFError(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}
