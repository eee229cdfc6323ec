package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"CryptoBoard/internal/chart"
	"CryptoBoard/internal/render"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	sendBufferSize = 8
	maxMessageSize = 512
)

// Message types pushed to dashboard clients.
const (
	MessageBoard = "board"
	MessageChart = "chart"
)

// Message is one websocket frame sent to the page.
type Message struct {
	Type  string        `json:"type"`
	Board *render.Board `json:"board,omitempty"`
	Chart *chart.Config `json:"chart,omitempty"`
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub fans board and chart updates out to every connected page.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[uuid.UUID]*client
}

// NewHub creates a Hub accepting websocket upgrades from allowedOrigins.
// Same-host requests and requests without an Origin header are always accepted.
func NewHub(allowedOrigins []string) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed[origin] {
					return true
				}
				return origin == "http://"+r.Host || origin == "https://"+r.Host
			},
		},
		clients: make(map[uuid.UUID]*client),
	}
}

// PublishBoard pushes a freshly rendered board.
func (h *Hub) PublishBoard(b render.Board) {
	h.broadcast(Message{Type: MessageBoard, Board: &b})
}

// PublishChart pushes a redrawn chart.
func (h *Hub) PublishChart(cfg chart.Config) {
	h.broadcast(Message{Type: MessageChart, Chart: &cfg})
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal hub message", slog.String("type", msg.Type), slog.Any("error", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Send buffer full.
			slog.Warn("dropping slow websocket client", slog.String("client", id.String()))
			delete(h.clients, id)
			close(c.send)
		}
	}
}

// Serve upgrades the request, sends the initial messages and keeps the
// client registered until the connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, initial []Message) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, sendBufferSize)}

	for _, msg := range initial {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		c.send <- data
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	slog.Debug("websocket client connected", slog.String("client", c.id.String()))

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// readPump discards inbound frames; it exists to process pongs and detect
// closed connections.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		slog.Debug("websocket client disconnected", slog.String("client", c.id.String()))
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}
