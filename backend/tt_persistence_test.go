package main

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveTTPersistencePathKeepsAbsolute(t *testing.T) {
	if got := resolveTTPersistencePath("/var/lib/reversi/tt.gob"); got != "/var/lib/reversi/tt.gob" {
		t.Fatalf("expected absolute paths untouched, got %q", got)
	}
	if got := resolveTTPersistencePath(""); got != "" {
		t.Fatalf("expected an empty path to stay empty, got %q", got)
	}
}

func TestResolveTTPersistencePathUsesCacheDir(t *testing.T) {
	old := dockerCacheDir
	dockerCacheDir = t.TempDir()
	t.Cleanup(func() { dockerCacheDir = old })

	want := filepath.Join(dockerCacheDir, "tt.gob")
	if got := resolveTTPersistencePath("tt.gob"); got != want {
		t.Fatalf("expected relative paths under the cache dir, got %q", got)
	}
}

func TestResolveTTPersistencePathFallsBackWithoutCacheDir(t *testing.T) {
	old := dockerCacheDir
	dockerCacheDir = filepath.Join(t.TempDir(), "absent")
	t.Cleanup(func() { dockerCacheDir = old })

	if got := resolveTTPersistencePath("tt.gob"); got != "tt.gob" {
		t.Fatalf("expected the relative path back when the cache dir is missing, got %q", got)
	}
}

func persistenceConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		AiEnableTtPersistence: true,
		AiTtPersistencePath:   filepath.Join(t.TempDir(), "tt.gob"),
		AiTtSize:              64,
		AiTtBuckets:           2,
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	cfg := persistenceConfig(t)
	tt := NewTranspositionTable(64, 2)
	tt.Store(5, 4, 120, TTExact, Move{X: 0, Y: 0})
	tt.Store(9, 3, -20, TTLower, Move{X: 1, Y: 1})
	tt.Store(77, 2, 7, TTUpper, Move{X: 3, Y: 2})

	if err := saveTTSnapshot(cfg, 8, tt); err != nil {
		t.Fatalf("expected the snapshot to save, got %v", err)
	}

	restored := NewTranspositionTable(64, 2)
	loadTTSnapshot(cfg, 8, restored)
	if restored.Count() != tt.Count() {
		t.Fatalf("expected %d restored entries, got %d", tt.Count(), restored.Count())
	}
	entry, ok := restored.Probe(9)
	if !ok {
		t.Fatalf("expected the restored table to answer for stored keys")
	}
	if entry.Depth != 3 || entry.Score != -20 || entry.Flag != TTLower {
		t.Fatalf("expected the entry to survive the round trip, got %+v", entry)
	}
}

func TestSnapshotFingerprintMismatchSkips(t *testing.T) {
	cfg := persistenceConfig(t)
	tt := NewTranspositionTable(64, 2)
	tt.Store(5, 4, 120, TTExact, Move{X: 0, Y: 0})
	if err := saveTTSnapshot(cfg, 8, tt); err != nil {
		t.Fatalf("expected the snapshot to save, got %v", err)
	}

	restored := NewTranspositionTable(64, 2)
	loadTTSnapshot(cfg, 10, restored)
	if restored.Count() != 0 {
		t.Fatalf("expected a snapshot from another board size to be skipped, got %d entries", restored.Count())
	}
}

func TestSnapshotGeometryMismatchSkips(t *testing.T) {
	cfg := persistenceConfig(t)
	snapshot := ttSnapshot{
		Fingerprint: searchFingerprint(8, cfg.AiTtSize, cfg.AiTtBuckets),
		Size:        32,
		Buckets:     cfg.AiTtBuckets,
		Entries:     []TTEntry{{Key: 5, Depth: 4, Score: 120, Flag: TTExact, Valid: true}},
	}
	file, err := os.Create(cfg.AiTtPersistencePath)
	if err != nil {
		t.Fatalf("creating snapshot file: %v", err)
	}
	if err := gob.NewEncoder(file).Encode(&snapshot); err != nil {
		t.Fatalf("encoding snapshot: %v", err)
	}
	file.Close()

	restored := NewTranspositionTable(64, 2)
	loadTTSnapshot(cfg, 8, restored)
	if restored.Count() != 0 {
		t.Fatalf("expected a snapshot with foreign geometry to be skipped, got %d entries", restored.Count())
	}
}

func TestTruncatedSnapshotIsRemoved(t *testing.T) {
	cfg := persistenceConfig(t)
	if err := os.WriteFile(cfg.AiTtPersistencePath, nil, 0o644); err != nil {
		t.Fatalf("writing truncated snapshot: %v", err)
	}

	restored := NewTranspositionTable(64, 2)
	loadTTSnapshot(cfg, 8, restored)
	if restored.Count() != 0 {
		t.Fatalf("expected nothing restored from a truncated snapshot")
	}
	if _, err := os.Stat(cfg.AiTtPersistencePath); !os.IsNotExist(err) {
		t.Fatalf("expected the truncated snapshot to be deleted, got %v", err)
	}
}

func TestPersistenceDisabledIsNoOp(t *testing.T) {
	tt := NewTranspositionTable(64, 2)
	tt.Store(5, 4, 120, TTExact, Move{X: 0, Y: 0})

	if err := saveTTSnapshot(Config{}, 8, tt); err != nil {
		t.Fatalf("expected a disabled save to succeed quietly, got %v", err)
	}
	loadTTSnapshot(Config{}, 8, tt)
	if err := saveTTSnapshot(persistenceConfig(t), 8, nil); err != nil {
		t.Fatalf("expected a nil table save to succeed quietly, got %v", err)
	}
}
