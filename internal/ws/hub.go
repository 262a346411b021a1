package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"
)

// Event types pushed to connected dashboards.
const (
	EventUserCreated        = "user_created"
	EventUserUpdated        = "user_updated"
	EventUserDeleted        = "user_deleted"
	EventPermissionsUpdated = "permissions_updated"
	EventStockUpdate        = "stock_update"
)

// Event is the JSON frame sent to every client.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Publisher sends events to connected clients.
type Publisher interface {
	Publish(eventType string, data interface{})
}

type Hub struct {
	Clients    map[Conn]bool
	Register   chan Conn
	Unregister chan Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        zerolog.Logger

	// done is closed when Run returns.
	done chan struct{}
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		Clients:    make(map[Conn]bool),
		Register:   make(chan Conn),
		Unregister: make(chan Conn),
		Broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "ws").Logger(),
	}
}

// Run serves the register, unregister and broadcast channels until ctx is done,
// then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			n := len(h.Clients)
			h.mutex.Unlock()
			h.log.Debug().Int("clients", n).Msg("client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.log.Debug().Err(err).Msg("dropping client")
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues an event for broadcast. It never blocks; when the queue is
// full the event is dropped and logged.
func (h *Hub) Publish(eventType string, data interface{}) {
	msg, err := json.Marshal(Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()})
	if err != nil {
		h.log.Error().Err(err).Str("event", eventType).Msg("marshal event")
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn().Str("event", eventType).Msg("broadcast queue full, event dropped")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Join registers c. It reports false once the hub has stopped.
func (h *Hub) Join(c Conn) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters c. After the hub has stopped it only closes c.
func (h *Hub) Leave(c Conn) {
	select {
	case h.Unregister <- c:
	case <-h.done:
		c.Close()
	}
}

// Serve registers c and keeps it open until the client goes away.
func (h *Hub) Serve(c *websocket.Conn) {
	if !h.Join(c) {
		c.Close()
		return
	}
	defer h.Leave(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
