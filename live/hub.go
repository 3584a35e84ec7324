package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Event is what the hub pushes to showcase screens. Incoming client
// messages are ignored; the channel is broadcast-only.
type Event struct {
	Event   string `json:"event"`
	SportID int    `json:"sport_id"`
}

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	isClosed bool
	mu       sync.Mutex
}

// Hub keeps the set of connected showcase screens and fans broadcast
// events out to them. There is a single logical room: every screen shows
// the same showcase.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte

	clients map[*Client]bool
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.logger.Debug("showcase client connected", slog.Int("clients", len(h.clients)))

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				client.mu.Lock()
				if !client.isClosed {
					close(client.Send)
					client.isClosed = true
				}
				client.mu.Unlock()
				delete(h.clients, client)
				h.logger.Debug("showcase client disconnected", slog.Int("clients", len(h.clients)))
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				client.mu.Lock()
				if client.isClosed {
					client.mu.Unlock()
					continue
				}
				select {
				case client.Send <- message:
				default:
					// Slow consumer: drop the event rather than block the hub.
				}
				client.mu.Unlock()
			}
		}
	}
}

// NotifyResultsUpdated satisfies services.ResultNotifier. A nil hub is a
// no-op so callers can run without the live layer wired.
func (h *Hub) NotifyResultsUpdated(sportID int) {
	if h == nil {
		return
	}
	payload, err := json.Marshal(Event{Event: "results_updated", SportID: sportID})
	if err != nil {
		h.logger.Error("failed to marshal showcase event", slog.Any("error", err))
		return
	}
	h.Broadcast <- payload
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush whatever queued up while we held the writer.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
