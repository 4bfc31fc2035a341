// Websocket overlay stream. Rendering collaborators subscribe once and
// receive the overlay payload after every simulated day instead of
// polling /api/v1/overlays.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
}

func newHub() *hub {
	return &hub{
		clients:    map[*client]bool{},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 16),
	}
}

func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer, drop it.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

func (c *client) writer() {
	for msg := range c.send {
		c.conn.WriteMessage(websocket.TextMessage, msg)
	}
	c.conn.Close()
}

func (c *client) reader(h *hub) {
	defer func() { h.unregister <- c }()
	for {
		// Clients never send anything meaningful; the read loop only
		// detects disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 8)}
	s.hub.register <- c
	go c.writer()
	go c.reader(s.hub)

	// Send the current overlays immediately so new clients do not wait a
	// full day for their first frame.
	s.Mu.Lock()
	payload := s.overlayPayload()
	s.Mu.Unlock()
	if msg, err := json.Marshal(payload); err == nil {
		c.send <- msg
	}
}

// BroadcastOverlays pushes the current overlay payload to every stream
// subscriber. The driver calls it after each completed step.
func (s *Server) BroadcastOverlays() {
	if s.hub == nil {
		return
	}
	s.Mu.Lock()
	payload := s.overlayPayload()
	s.Mu.Unlock()

	msg, err := json.Marshal(payload)
	if err != nil {
		slog.Error("overlay marshal failed", "error", err)
		return
	}
	select {
	case s.hub.broadcast <- msg:
	default:
	}
}
