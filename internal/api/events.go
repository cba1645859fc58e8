package api

import (
	"encoding/json"
	log "log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// InteractionEvent is pushed to connected UI clients after each completed turn.
type InteractionEvent struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Transcript string    `json:"transcript"`
	Language   string    `json:"language"`
	Intent     string    `json:"intent"`
	Response   string    `json:"response"`
	Summary    string    `json:"summary"`
}

// eventClient wraps one subscriber connection. Gorilla conns allow at most
// one concurrent writer, so every write goes through writeMu.
type eventClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *eventClient) send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// EventHub fans completed interactions out to websocket subscribers.
// Broadcast is safe to call from concurrent request handlers.
type EventHub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*eventClient
}

func NewEventHub() *EventHub {
	return &EventHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*eventClient),
	}
}

func (h *EventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade events connection", "err", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = &eventClient{conn: conn}
	h.mu.Unlock()

	log.Debug("Events client connected", "remote", conn.RemoteAddr())

	// The read loop exists only to observe the close.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends the event to every connected client, dropping the ones
// that fail to take the write.
func (h *EventHub) Broadcast(ev InteractionEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error("Failed to marshal event", "err", err)
		return
	}

	h.mu.Lock()
	clients := make([]*eventClient, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.send(data); err != nil {
			h.drop(c.conn)
		}
	}
}

func (h *EventHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}
