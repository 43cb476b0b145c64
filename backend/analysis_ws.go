package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// AnalysisEvent is one progress report from a running search: a scored root
// candidate, or the final pick when Final is set.
type AnalysisEvent struct {
	Move      Move   `json:"move"`
	Notation  string `json:"notation"`
	Score     int    `json:"score"`
	Depth     int    `json:"depth"`
	Candidate int    `json:"candidate,omitempty"`
	Total     int    `json:"total,omitempty"`
	Nodes     int64  `json:"nodes"`
	Player    int    `json:"player"`
	ElapsedMs int64  `json:"elapsed_ms,omitempty"`
	Final     bool   `json:"final,omitempty"`
}

// AnalysisSink receives live search progress. Publish must never block the
// search thread.
type AnalysisSink interface {
	PublishAnalysis(AnalysisEvent)
}

type AnalysisClient struct {
	hub  *AnalysisHub
	conn *websocket.Conn
	send chan []byte
}

type AnalysisHub struct {
	mu        sync.Mutex
	clients   map[*AnalysisClient]struct{}
	broadcast chan AnalysisEvent
}

func NewAnalysisHub() *AnalysisHub {
	return &AnalysisHub{
		clients:   make(map[*AnalysisClient]struct{}),
		broadcast: make(chan AnalysisEvent, 64),
	}
}

func (h *AnalysisHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event := <-h.broadcast:
			h.mu.Lock()
			if len(h.clients) == 0 {
				h.mu.Unlock()
				continue
			}
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "analysis", Payload: mustMarshal(event)})
			}
			h.mu.Unlock()
		}
	}
}

func (h *AnalysisHub) Register(c *AnalysisClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *AnalysisHub) Unregister(c *AnalysisClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// PublishAnalysis drops events when the channel is full; a slow feed never
// stalls the search.
func (h *AnalysisHub) PublishAnalysis(event AnalysisEvent) {
	select {
	case h.broadcast <- event:
	default:
	}
}

func (h *AnalysisHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *AnalysisClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func serveAnalysisWS(hub *AnalysisHub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &AnalysisClient{hub: hub, conn: conn, send: make(chan []byte, 16)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		if err := pumpWS(conn, client.send); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}
