// Package realtime pushes new notifications to connected browsers over
// websockets.
package realtime

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"rideshare/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the envelope written to every connection.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client is one websocket connection of a signed-in user.
type Client struct {
	ID    string
	Email string
	conn  *websocket.Conn
	send  chan []byte
	hub   *Hub
}

// Hub tracks the open connections per user email.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{clients: make(map[string]map[*Client]struct{}), logger: logger}
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := key(c.Email)
	if h.clients[k] == nil {
		h.clients[k] = make(map[*Client]struct{})
	}
	h.clients[k][c] = struct{}{}
	h.logger.Debug("Websocket client registered", zap.String("clientID", c.ID), zap.String("email", c.Email))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := key(c.Email)
	if set, ok := h.clients[k]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.clients, k)
		}
	}
}

// Connected reports how many connections email currently has.
func (h *Hub) Connected(email string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[key(email)])
}

// PushNotification sends n to every connection of email. Slow connections
// drop the message.
func (h *Hub) PushNotification(email string, n models.Notification) error {
	payload, err := json.Marshal(Message{Type: "notification", Data: n})
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[key(email)] {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("Websocket send buffer full, dropping notification",
				zap.String("clientID", c.ID), zap.String("email", email))
		}
	}
	return nil
}

// Serve upgrades the request and streams notifications for identity until
// the connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	c := &Client{
		ID:    uuid.New().String(),
		Email: identity.Email,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		hub:   h,
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

// readPump only watches for the close frame and pong replies.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("Websocket read error", zap.String("clientID", c.ID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
