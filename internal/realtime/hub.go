// Package realtime pushes freshly fanned-out notifications to connected
// clients over WebSocket. Delivery is best effort: the stored notification
// list is the source of truth and offline users catch up on next fetch.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/models"
)

const sendBufferSize = 64

// client is one WebSocket connection owned by a user.
type client struct {
	userID string
	send   chan []byte
}

// Hub tracks live connections per user and unicasts notifications. It is
// push-only: clients never send anything but pings.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]struct{})}
}

// pushEnvelope is the wire format for a pushed notification.
type pushEnvelope struct {
	Type         string              `json:"type"`
	Notification models.Notification `json:"notification"`
	PushedAt     time.Time           `json:"pushed_at"`
}

// Push implements the notification fan-out's delivery hook. A slow client
// whose buffer is full just misses the push; it still has the stored list.
func (h *Hub) Push(userID string, notification models.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.clients[userID]
	if !ok || len(clients) == 0 {
		return
	}

	data, err := json.Marshal(pushEnvelope{
		Type:         "notification",
		Notification: notification,
		PushedAt:     time.Now().UTC(),
	})
	if err != nil {
		logger.Log.Warn("Failed to encode push", zap.Error(err))
		return
	}

	for c := range clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(c.send)
		return
	}
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*client]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
}

// ConnectionCount reports live connections for a user.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Shutdown drops every connection. New registrations are refused.
func (h *Hub) Shutdown(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	for _, clients := range h.clients {
		for c := range clients {
			close(c.send)
		}
	}
	h.clients = make(map[string]map[*client]struct{})
	return nil
}
