// Command arena drives ai-vs-ai Reversi matches against one or more
// backend instances over their REST API and records every outcome in a
// sqlite database for later comparison of depth and board-size settings.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

type arenaConfig struct {
	backends       []string
	episodes       int
	boardSize      int
	difficulty     string
	dynamicDepth   bool
	dbPath         string
	pollInterval   time.Duration
	episodeTimeout time.Duration
	readyTimeout   time.Duration
}

type arena struct {
	cfg    arenaConfig
	client *http.Client
	logger *log.Logger
	store  *resultStore
}

type startRequest struct {
	Settings gameSettings `json:"settings"`
}

type gameSettings struct {
	Mode         string `json:"mode"`
	BoardSize    int    `json:"board_size"`
	Difficulty   string `json:"difficulty"`
	DynamicDepth bool   `json:"dynamic_depth"`
}

// gameStatus is the slice of the backend status payload the arena cares
// about. Extra fields are ignored on decode.
type gameStatus struct {
	GameID     string            `json:"game_id"`
	Status     string            `json:"status"`
	BlackDiscs int               `json:"black_discs"`
	WhiteDiscs int               `json:"white_discs"`
	History    []json.RawMessage `json:"history"`
}

func main() {
	cfg := loadArenaConfig()
	logger := buildLogger(getenv("ARENA_LOG_PATH", ""))

	store, err := openResultStore(cfg.dbPath)
	if err != nil {
		logger.Fatalf("[arena] open result store %s: %v", cfg.dbPath, err)
	}
	defer store.Close()

	a := &arena{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
		store:  store,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.logf("starting: %d backend(s), %d episode(s) each, board=%d difficulty=%s dynamic=%t db=%s",
		len(cfg.backends), cfg.episodes, cfg.boardSize, cfg.difficulty, cfg.dynamicDepth, cfg.dbPath)

	g, gctx := errgroup.WithContext(ctx)
	for _, backend := range cfg.backends {
		backend := backend
		g.Go(func() error {
			return a.runBackend(gctx, backend)
		})
	}
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Fatalf("[arena] run failed: %v", err)
	}

	summary, err := store.summary(context.Background())
	if err != nil {
		logger.Fatalf("[arena] summary query: %v", err)
	}
	a.logf("done: %d games, black %d / white %d / draw %d, avg %.1f moves, avg %.0fms",
		summary.Games, summary.BlackWins, summary.WhiteWins, summary.Draws, summary.AvgMoves, summary.AvgMs)
}

func loadArenaConfig() arenaConfig {
	backends := strings.Split(getenv("ARENA_BACKENDS", "http://localhost:8080"), ",")
	cleaned := make([]string, 0, len(backends))
	for _, b := range backends {
		b = strings.TrimRight(strings.TrimSpace(b), "/")
		if b != "" {
			cleaned = append(cleaned, b)
		}
	}
	return arenaConfig{
		backends:       cleaned,
		episodes:       getenvInt("ARENA_EPISODES", 10),
		boardSize:      getenvInt("ARENA_BOARD_SIZE", 8),
		difficulty:     getenv("ARENA_DIFFICULTY", "medium"),
		dynamicDepth:   getenvBool("ARENA_DYNAMIC_DEPTH", false),
		dbPath:         getenv("ARENA_DB_PATH", "arena.db"),
		pollInterval:   time.Duration(getenvInt("ARENA_POLL_MS", 500)) * time.Millisecond,
		episodeTimeout: time.Duration(getenvInt("ARENA_EPISODE_TIMEOUT_SEC", 600)) * time.Second,
		readyTimeout:   time.Duration(getenvInt("ARENA_READY_TIMEOUT_SEC", 60)) * time.Second,
	}
}

func buildLogger(path string) *log.Logger {
	if path == "" {
		return log.New(os.Stdout, "", log.LstdFlags)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("[arena] cannot create log dir for %s: %v, logging to stdout only", path, err)
		return log.New(os.Stdout, "", log.LstdFlags)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("[arena] cannot open %s: %v, logging to stdout only", path, err)
		return log.New(os.Stdout, "", log.LstdFlags)
	}
	return log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags)
}

func (a *arena) logf(format string, args ...any) {
	a.logger.Printf("[arena] "+format, args...)
}

func (a *arena) runBackend(ctx context.Context, backend string) error {
	if err := a.waitBackendReady(ctx, backend); err != nil {
		return fmt.Errorf("backend %s not ready: %w", backend, err)
	}
	for episode := 1; episode <= a.cfg.episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := a.playEpisode(ctx, backend, episode)
		if err != nil {
			return fmt.Errorf("backend %s episode %d: %w", backend, episode, err)
		}
		if err := a.store.insert(ctx, result); err != nil {
			return fmt.Errorf("record episode %d from %s: %w", episode, backend, err)
		}
		a.logf("%s episode %d/%d: %s %d-%d in %d moves (%.1fs)",
			backend, episode, a.cfg.episodes, result.Winner,
			result.BlackDiscs, result.WhiteDiscs, result.Moves,
			float64(result.DurationMs)/1000)
	}
	return nil
}

func (a *arena) waitBackendReady(ctx context.Context, backend string) error {
	deadline := time.Now().Add(a.cfg.readyTimeout)
	for {
		var pong map[string]string
		err := a.getJSON(ctx, backend+"/api/ping", &pong)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		a.logf("waiting for %s: %v", backend, err)
		if err := sleepWithContext(ctx, 2*time.Second); err != nil {
			return err
		}
	}
}

func (a *arena) playEpisode(ctx context.Context, backend string, episode int) (episodeResult, error) {
	req := startRequest{Settings: gameSettings{
		Mode:         "ai_vs_ai",
		BoardSize:    a.cfg.boardSize,
		Difficulty:   a.cfg.difficulty,
		DynamicDepth: a.cfg.dynamicDepth,
	}}
	var started gameStatus
	if err := a.postJSON(ctx, backend+"/api/start", req, &started); err != nil {
		return episodeResult{}, fmt.Errorf("start game: %w", err)
	}
	startedAt := time.Now()
	deadline := startedAt.Add(a.cfg.episodeTimeout)

	for {
		if err := sleepWithContext(ctx, a.cfg.pollInterval); err != nil {
			return episodeResult{}, err
		}
		var status gameStatus
		if err := a.getJSON(ctx, backend+"/api/status", &status); err != nil {
			return episodeResult{}, fmt.Errorf("poll status: %w", err)
		}
		if status.GameID != started.GameID {
			return episodeResult{}, fmt.Errorf("game %s replaced by %s while polling", started.GameID, status.GameID)
		}
		if status.Status == "running" {
			if time.Now().After(deadline) {
				return episodeResult{}, fmt.Errorf("game %s still running after %s", started.GameID, a.cfg.episodeTimeout)
			}
			continue
		}
		winner, err := winnerFromStatus(status.Status)
		if err != nil {
			return episodeResult{}, err
		}
		return episodeResult{
			Backend:    backend,
			Episode:    episode,
			BoardSize:  a.cfg.boardSize,
			Difficulty: a.cfg.difficulty,
			Winner:     winner,
			BlackDiscs: status.BlackDiscs,
			WhiteDiscs: status.WhiteDiscs,
			Moves:      len(status.History),
			DurationMs: time.Since(startedAt).Milliseconds(),
			FinishedAt: time.Now(),
		}, nil
	}
}

func winnerFromStatus(status string) (string, error) {
	switch status {
	case "black_won":
		return "black", nil
	case "white_won":
		return "white", nil
	case "draw":
		return "draw", nil
	default:
		return "", fmt.Errorf("game ended in unexpected status %q", status)
	}
}

func (a *arena) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("GET %s: %s: %s", url, resp.Status, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *arena) postJSON(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("POST %s: %s: %s", url, resp.Status, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
