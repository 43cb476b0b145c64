package main

import (
	"encoding/json"
	"sync"
)

// Hub fans session updates out to every connected game websocket. Publishing
// never blocks: events queue into one buffered channel and are dropped when
// the feed cannot keep up, since every payload is a full snapshot anyway.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	events  chan wsMessage
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type boardPayload struct {
	Board      [][]int           `json:"board"`
	NextPlayer int               `json:"next_player"`
	Status     string            `json:"status"`
	BlackDiscs int               `json:"black_discs"`
	WhiteDiscs int               `json:"white_discs"`
	MoveCount  int               `json:"move_count"`
	AiThinking bool              `json:"ai_thinking"`
	LastMove   *moveDTO          `json:"last_move,omitempty"`
	LegalMoves []moveDTO         `json:"legal_moves"`
	Message    string            `json:"message,omitempty"`
	History    []historyEntryDTO `json:"history"`
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		events:  make(chan wsMessage, 64),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-h.events:
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) BroadcastBoard(payload boardPayload) {
	h.publish("board", payload)
}

func (h *Hub) BroadcastHistory(payload historyPayload) {
	h.publish("history", payload)
}

func (h *Hub) BroadcastStatus(payload StatusResponse) {
	h.publish("status", payload)
}

func (h *Hub) BroadcastReset(payload resetPayload) {
	h.publish("reset", payload)
}

func (h *Hub) BroadcastSettings(payload settingsPayload) {
	h.publish("settings", payload)
}

func (h *Hub) publish(kind string, payload any) {
	select {
	case h.events <- wsMessage{Type: kind, Payload: mustMarshal(payload)}:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
