// Package chat relays messages between a guest and the host, one room per
// reservation. The assistant answering on the host's side lives outside this
// process; the hub only moves frames.
package chat

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// Event is one relayed frame.
type Event struct {
	Type   string    `json:"type"`
	RID    string    `json:"rid"`
	Sender string    `json:"sender,omitempty"`
	Text   string    `json:"text,omitempty"`
	SentAt time.Time `json:"sentAt,omitempty"`
}

const (
	EventMessage = "message"
	EventTyping  = "typing"
)

// connection is a single websocket client inside one reservation room.
type connection struct {
	rid    string
	sender string // "guest" or "host"
	conn   *websocket.Conn
	send   chan []byte
}

// Hub manages all active connections, grouped by reservation.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*connection]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*connection]bool),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.rid]
	if !ok {
		room = make(map[*connection]bool)
		h.rooms[c.rid] = room
	}
	room[c] = true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.rid]
	if !ok || !room[c] {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.rid)
	}
}

// Broadcast sends an event to every connection in the reservation's room.
func (h *Hub) Broadcast(rid string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[rid] {
		select {
		case c.send <- data:
		default:
			// Client too slow — skip
		}
	}
}

// ServeWS registers a new connection and starts its read/write loops.
func (h *Hub) ServeWS(conn *websocket.Conn, rid, sender string) {
	c := &connection{
		rid:    rid,
		sender: sender,
		conn:   conn,
		send:   make(chan []byte, 256),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var incoming struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(msg, &incoming); err != nil {
			continue
		}

		switch incoming.Type {
		case EventMessage:
			h.Broadcast(c.rid, &Event{
				Type:   EventMessage,
				RID:    c.rid,
				Sender: c.sender,
				Text:   incoming.Text,
				SentAt: time.Now().UTC(),
			})
		case EventTyping:
			h.Broadcast(c.rid, &Event{
				Type:   EventTyping,
				RID:    c.rid,
				Sender: c.sender,
			})
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
