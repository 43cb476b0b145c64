package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	GameID          string            `json:"game_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	BoardSize       int               `json:"board_size"`
	Status          string            `json:"status"`
	BlackDiscs      int               `json:"black_discs"`
	WhiteDiscs      int               `json:"white_discs"`
	LegalMoves      []moveDTO         `json:"legal_moves"`
	LastMove        *moveDTO          `json:"last_move,omitempty"`
	Message         string            `json:"message,omitempty"`
	AiThinking      bool              `json:"ai_thinking"`
	CanUndo         bool              `json:"can_undo"`
	History         []historyEntryDTO `json:"history"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode         string `json:"mode"`
	HumanPlayer  int    `json:"human_player"`
	BoardSize    int    `json:"board_size"`
	Difficulty   string `json:"difficulty"`
	DynamicDepth bool   `json:"dynamic_depth"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type moveDTO struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Notation string `json:"notation"`
}

type historyEntryDTO struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Player    int    `json:"player"`
	Notation  string `json:"notation"`
	Flipped   int    `json:"flipped"`
	ElapsedMs int64  `json:"elapsed_ms"`
	IsAi      bool   `json:"is_ai"`
	Depth     int    `json:"depth"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	Board           [][]int           `json:"board"`
	History         []historyEntryDTO `json:"history"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	BoardSize       int               `json:"board_size"`
	BlackDiscs      int               `json:"black_discs"`
	WhiteDiscs      int               `json:"white_discs"`
	LegalMoves      []moveDTO         `json:"legal_moves"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type ttCacheStatusResponse struct {
	Count         int     `json:"count"`
	Capacity      int     `json:"capacity"`
	Usage         float64 `json:"usage"`
	Full          bool    `json:"full"`
	Generation    uint32  `json:"generation"`
	EntryBytes    uint64  `json:"entry_bytes"`
	UsedBytes     uint64  `json:"used_bytes"`
	CapacityBytes uint64  `json:"capacity_bytes"`
}

type ttCacheEntryDTO struct {
	Hash        string `json:"hash"`
	Hits        uint32 `json:"hits"`
	Depth       int    `json:"depth"`
	Score       int32  `json:"score"`
	Flag        string `json:"flag"`
	BestMove    Move   `json:"best_move"`
	Notation    string `json:"notation"`
	GenWritten  uint32 `json:"gen_written"`
	GenLastUsed uint32 `json:"gen_last_used"`
}

type ttCacheEntriesResponse struct {
	Items  []ttCacheEntryDTO `json:"items"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
	Total  int               `json:"total"`
}

func main() {
	var persistOnce sync.Once
	controller := NewGameController(DefaultGameSettings())
	persistOnShutdown := func(reason string) {
		persistOnce.Do(func() {
			config := GetConfig()
			if !config.AiTtSaveOnShutdown {
				return
			}
			log.Printf("[backend] persisting TT snapshot on %s", reason)
			_ = saveTTSnapshot(config, controller.Settings().BoardSize, controller.TT())
		})
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("[backend] panic recovered in main: %v", recovered)
			persistOnShutdown("panic")
		}
	}()

	startupConfig := GetConfig()
	loadTTSnapshot(startupConfig, controller.Settings().BoardSize, controller.TT())
	defer persistOnShutdown("exit")

	hub := NewHub()
	analysisHub := NewAnalysisHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go analysisHub.Run(ctx.Done())
	go func() {
		tickMs := startupConfig.TickMs
		if tickMs <= 0 {
			tickMs = 50
		}
		ticker := time.NewTicker(time.Duration(tickMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var sink AnalysisSink
				if analysisHub.HasClients() {
					sink = analysisHub
				}
				if controller.Tick(sink) {
					broadcastMoveApplied(hub, controller)
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings, err := settingsFromDTO(payload.Settings, DefaultGameSettings())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.BroadcastReset(resetFromController(controller))
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.StopGame()
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.BroadcastReset(resetFromController(controller))
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
			Reset    bool             `json:"reset"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
			controller.ApplyConfig(*payload.Config)
		}
		if payload.Settings != nil {
			settings, err := settingsFromDTO(*payload.Settings, controller.Settings())
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			reset := payload.Reset || settings.BoardSize != controller.Settings().BoardSize
			controller.UpdateSettings(settings, reset)
			if reset {
				hub.BroadcastReset(resetFromController(controller))
			}
		}
		hub.BroadcastSettings(settingsPayload{
			Settings: settingsToDTO(controller.Settings()),
			Config:   GetConfig(),
		})
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(Move{X: payload.X, Y: payload.Y})
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		broadcastMoveApplied(hub, controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		undone, errMsg := controller.UndoMove()
		if !undone {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		hub.BroadcastBoard(boardPayloadFromController(controller))
		hub.BroadcastHistory(historyPayload{History: historyToDTO(controller.MoveLog())})
		hub.BroadcastStatus(controllerStatus(controller))
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ttCacheStatus(controller.TT()))
	})
	r.Delete("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		controller.TT().Clear()
		writeJSON(w, http.StatusOK, map[string]any{
			"cleared": true,
		})
	})
	r.Get("/api/cache/tt/entries", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}
		if offset < 0 {
			offset = 0
		}
		writeJSON(w, http.StatusOK, ttCacheEntries(controller.TT(), offset, limit))
	})
	r.Delete("/api/cache/tt/entries/{hash}", func(w http.ResponseWriter, r *http.Request) {
		hashRaw := chi.URLParam(r, "hash")
		hash, err := parseTTKey(hashRaw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid hash"})
			return
		}
		deleted := controller.TT().DeleteByKey(hash)
		writeJSON(w, http.StatusOK, map[string]any{
			"deleted": deleted,
			"hash":    fmt.Sprintf("0x%016x", hash),
		})
	})
	r.Post("/api/cache/tt/save", func(w http.ResponseWriter, r *http.Request) {
		err := saveTTSnapshot(GetConfig(), controller.Settings().BoardSize, controller.TT())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"saved": true, "count": controller.TT().Count()})
	})
	r.Post("/api/cache/tt/load", func(w http.ResponseWriter, r *http.Request) {
		loadTTSnapshot(GetConfig(), controller.Settings().BoardSize, controller.TT())
		writeJSON(w, http.StatusOK, map[string]any{"loaded": true, "count": controller.TT().Count()})
	})

	r.Get("/ws/game", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})
	r.Get("/ws/analysis", func(w http.ResponseWriter, r *http.Request) {
		serveAnalysisWS(analysisHub, w, r)
	})

	server := &http.Server{
		Addr:    startupConfig.HttpAddr,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[backend] listening on %s", startupConfig.HttpAddr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}

	cancel()
	persistOnShutdown("shutdown")
	if runErr != nil {
		log.Printf("[backend] exiting after server error: %v", runErr)
	}
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
	client.sendJSON(wsMessage{Type: "board", Payload: mustMarshal(boardPayloadFromController(controller))})

	go func() {
		defer conn.Close()
		if err := pumpWS(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		case "move":
			var payload apiMove
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			controller.QueueHumanMove(Move{X: payload.X, Y: payload.Y})
		}
	}
}

func broadcastMoveApplied(hub *Hub, controller *GameController) {
	hub.BroadcastBoard(boardPayloadFromController(controller))
	if entries := controller.MoveLog(); len(entries) > 0 {
		hub.BroadcastHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entries[len(entries)-1])}})
	}
	hub.BroadcastStatus(controllerStatus(controller))
}

func controllerStatus(controller *GameController) StatusResponse {
	snap := controller.Snapshot()
	state := snap.State
	black, white := state.Board.CountDiscs()
	return StatusResponse{
		GameID:          snap.GameID,
		Settings:        settingsToDTO(snap.Settings),
		Config:          GetConfig(),
		Board:           boardToSlice(state.Board),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		BoardSize:       state.Board.Size(),
		Status:          statusToString(state.Status),
		BlackDiscs:      black,
		WhiteDiscs:      white,
		LegalMoves:      legalMovesDTO(state, snap.Settings),
		LastMove:        lastMoveDTO(state),
		Message:         state.LastMessage,
		AiThinking:      snap.AiThinking,
		CanUndo:         snap.CanUndo,
		History:         historyToDTO(snap.Log),
		TurnStartedAtMs: snap.TurnStartMs,
	}
}

func boardPayloadFromController(controller *GameController) boardPayload {
	snap := controller.Snapshot()
	state := snap.State
	black, white := state.Board.CountDiscs()
	return boardPayload{
		Board:      boardToSlice(state.Board),
		NextPlayer: playerToInt(state.ToMove),
		Status:     statusToString(state.Status),
		BlackDiscs: black,
		WhiteDiscs: white,
		MoveCount:  len(snap.Log),
		AiThinking: snap.AiThinking,
		LastMove:   lastMoveDTO(state),
		LegalMoves: legalMovesDTO(state, snap.Settings),
		Message:    state.LastMessage,
		History:    historyToDTO(snap.Log),
	}
}

func resetFromController(controller *GameController) resetPayload {
	snap := controller.Snapshot()
	state := snap.State
	black, white := state.Board.CountDiscs()
	return resetPayload{
		Board:           boardToSlice(state.Board),
		History:         historyToDTO(snap.Log),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		BoardSize:       state.Board.Size(),
		BlackDiscs:      black,
		WhiteDiscs:      white,
		LegalMoves:      legalMovesDTO(state, snap.Settings),
		TurnStartedAtMs: snap.TurnStartMs,
	}
}

func legalMovesDTO(state GameState, settings GameSettings) []moveDTO {
	rules := NewRules(settings)
	moves := rules.LegalMoves(state.Board, state.ToMove)
	out := make([]moveDTO, 0, len(moves))
	for _, move := range moves {
		out = append(out, moveDTO{X: move.X, Y: move.Y, Notation: move.Notation()})
	}
	return out
}

func lastMoveDTO(state GameState) *moveDTO {
	if !state.HasLastMove || state.LastMove.IsPass() {
		return nil
	}
	return &moveDTO{X: state.LastMove.X, Y: state.LastMove.Y, Notation: state.LastMove.Notation()}
}

// settingsFromDTO folds a settings message over the base settings. An empty
// mode or difficulty keeps what the base had.
func settingsFromDTO(dto GameSettingsDTO, base GameSettings) (GameSettings, error) {
	settings := base
	if dto.BoardSize != 0 {
		settings.BoardSize = dto.BoardSize
	}
	if dto.Difficulty != "" {
		difficulty, err := DifficultyFromString(dto.Difficulty)
		if err != nil {
			return settings, err
		}
		settings.Difficulty = difficulty
	}
	settings.DynamicDepth = dto.DynamicDepth
	switch dto.Mode {
	case "ai_vs_ai":
		settings.BlackType = PlayerAI
		settings.WhiteType = PlayerAI
	case "human_vs_human":
		settings.BlackType = PlayerHuman
		settings.WhiteType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.BlackType = PlayerAI
			settings.WhiteType = PlayerHuman
		} else {
			settings.BlackType = PlayerHuman
			settings.WhiteType = PlayerAI
		}
	}
	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	mode := "ai_vs_human"
	if settings.BlackType == PlayerAI && settings.WhiteType == PlayerAI {
		mode = "ai_vs_ai"
	} else if settings.BlackType == PlayerHuman && settings.WhiteType == PlayerHuman {
		mode = "human_vs_human"
	}
	humanPlayer := 0
	if settings.BlackType == PlayerHuman && settings.WhiteType != PlayerHuman {
		humanPlayer = 1
	} else if settings.WhiteType == PlayerHuman && settings.BlackType != PlayerHuman {
		humanPlayer = 2
	} else if settings.BlackType == PlayerHuman && settings.WhiteType == PlayerHuman {
		humanPlayer = 1
	}
	return GameSettingsDTO{
		Mode:         mode,
		HumanPlayer:  humanPlayer,
		BoardSize:    settings.BoardSize,
		Difficulty:   settings.Difficulty.String(),
		DynamicDepth: settings.DynamicDepth,
	}
}

func boardToSlice(board Board) [][]int {
	size := board.Size()
	rows := make([][]int, size)
	for y := 0; y < size; y++ {
		rows[y] = make([]int, size)
		for x := 0; x < size; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellBlack:
		return 1
	case CellWhite:
		return 2
	default:
		return 0
	}
}

func intToCell(value int) Cell {
	switch value {
	case 1:
		return CellBlack
	case 2:
		return CellWhite
	default:
		return CellEmpty
	}
}

func playerToInt(player PlayerColor) int {
	if player == PlayerBlack {
		return 1
	}
	return 2
}

func intToPlayer(value int) PlayerColor {
	if value == 2 {
		return PlayerWhite
	}
	return PlayerBlack
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusBlackWon:
		return 1
	case StatusWhiteWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func historyToDTO(entries []MoveLogEntry) []historyEntryDTO {
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry MoveLogEntry) historyEntryDTO {
	return historyEntryDTO{
		X:         entry.Move.X,
		Y:         entry.Move.Y,
		Player:    playerToInt(entry.Player),
		Notation:  entry.Notation,
		Flipped:   entry.Flipped,
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Depth:     entry.Depth,
	}
}

func ttCacheStatus(tt *TranspositionTable) ttCacheStatusResponse {
	if tt == nil {
		return ttCacheStatusResponse{}
	}
	count := tt.Count()
	capacity := tt.Capacity()
	entryBytes := uint64(unsafe.Sizeof(TTEntry{}))
	usedBytes := uint64(count) * entryBytes
	capacityBytes := uint64(capacity) * entryBytes
	usage := 0.0
	full := false
	if capacity > 0 {
		usage = float64(count) / float64(capacity)
		full = count >= capacity
	}
	return ttCacheStatusResponse{
		Count:         count,
		Capacity:      capacity,
		Usage:         usage,
		Full:          full,
		Generation:    tt.Generation(),
		EntryBytes:    entryBytes,
		UsedBytes:     usedBytes,
		CapacityBytes: capacityBytes,
	}
}

func ttCacheEntries(tt *TranspositionTable, offset int, limit int) ttCacheEntriesResponse {
	if tt == nil {
		return ttCacheEntriesResponse{
			Items:  []ttCacheEntryDTO{},
			Offset: offset,
			Limit:  limit,
			Total:  0,
		}
	}
	entries, total := tt.TopEntriesByHits(offset, limit)
	items := make([]ttCacheEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ttEntryToDTO(entry))
	}
	return ttCacheEntriesResponse{
		Items:  items,
		Offset: offset,
		Limit:  limit,
		Total:  total,
	}
}

func ttEntryToDTO(entry TTEntry) ttCacheEntryDTO {
	notation := ""
	if !entry.BestMove.IsPass() {
		notation = entry.BestMove.Notation()
	}
	return ttCacheEntryDTO{
		Hash:        fmt.Sprintf("0x%016x", entry.Key),
		Hits:        entry.Hits,
		Depth:       entry.Depth,
		Score:       entry.Score,
		Flag:        ttFlagString(entry.Flag),
		BestMove:    entry.BestMove,
		Notation:    notation,
		GenWritten:  entry.GenWritten,
		GenLastUsed: entry.GenLastUsed,
	}
}

func ttFlagString(flag TTFlag) string {
	switch flag {
	case TTExact:
		return "EXACT"
	case TTLower:
		return "LOWER"
	case TTUpper:
		return "UPPER"
	default:
		return "UNKNOWN"
	}
}

func parseTTKey(raw string) (uint64, error) {
	if raw == "" {
		return 0, errors.New("empty")
	}
	return strconv.ParseUint(raw, 0, 64)
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
