// Package live pushes refresh notifications to a user's open websocket
// connections whenever their tasks or categories change.
package live

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 512
)

// Message is the JSON frame sent to clients.
type Message struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	User    string `json:"user"`
}

// conn is the part of *websocket.Conn the hub writes through.
type conn interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one registered connection. gorilla/websocket allows a single
// concurrent writer, so all writes go through the client's mutex.
type Client struct {
	conn conn
	mu   sync.Mutex
}

func (c *Client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

type Hub struct {
	logger *log.Logger

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]map[*Client]struct{}),
	}
}

// Register adds conn under user and returns its client handle.
func (h *Hub) Register(user string, ws *websocket.Conn) *Client {
	return h.register(user, ws)
}

func (h *Hub) register(user string, c conn) *Client {
	client := &Client{conn: c}

	h.mu.Lock()
	if h.clients[user] == nil {
		h.clients[user] = make(map[*Client]struct{})
	}
	h.clients[user][client] = struct{}{}
	h.mu.Unlock()

	return client
}

// Unregister removes client and closes its connection.
func (h *Hub) Unregister(user string, client *Client) {
	h.mu.Lock()
	if clients, exists := h.clients[user]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, user)
		}
	}
	h.mu.Unlock()

	client.conn.Close()
}

// Count returns the number of connections registered for user.
func (h *Hub) Count(user string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[user])
}

// BroadcastRefresh tells every connection of user to reload its data. It
// does not wait for the writes; connections that fail to receive the
// message are dropped.
func (h *Hub) BroadcastRefresh(user string) {
	h.mu.RLock()
	clients, exists := h.clients[user]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy so the lock is not held while writing.
	targets := make([]*Client, 0, len(clients))
	for client := range clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	msg := Message{
		Type:    "refresh",
		Message: "Tasks updated",
		User:    user,
	}

	for _, client := range targets {
		go h.send(user, client, msg)
	}
}

func (h *Hub) send(user string, client *Client, msg Message) {
	if err := client.WriteJSON(msg); err != nil {
		h.logger.Warn("failed to broadcast refresh", "user", user, "err", err)
		h.Unregister(user, client)
	}
}
