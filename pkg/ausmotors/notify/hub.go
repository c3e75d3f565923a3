package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Hub keeps one Center per client so that a notification is only shown to
// the visitor it was raised for. A client's center is dropped once it is empty.
type Hub struct {
	mu      sync.Mutex
	ttl     time.Duration
	log     *logrus.Logger
	centers map[string]*Center
}

// NewHub returns a hub whose notifications expire after ttl
func NewHub(ttl time.Duration, logger *logrus.Logger) *Hub {
	if logger == nil {
		logger = logrus.New()
	}
	return &Hub{
		ttl:     ttl,
		log:     logger,
		centers: make(map[string]*Center),
	}
}

// Notify shows a notification to client
func (h *Hub) Notify(client, message string, kind Kind) Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.centers[client]
	if !ok {
		c = NewCenter(h.ttl, h.log)
		c.onEmpty = func() { h.drop(client, c) }
		h.centers[client] = c
	}
	return c.Notify(message, kind)
}

// List returns the notifications shown to client, oldest first
func (h *Hub) List(client string) []Notification {
	h.mu.Lock()
	c, ok := h.centers[client]
	h.mu.Unlock()
	if !ok {
		return nil
	}
	return c.List()
}

// Dismiss removes one of client's notifications. It reports whether it was present.
func (h *Hub) Dismiss(client, id string) bool {
	h.mu.Lock()
	c, ok := h.centers[client]
	h.mu.Unlock()
	if !ok {
		return false
	}
	return c.Dismiss(id)
}

// Clients returns how many clients currently have notifications
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.centers)
}

func (h *Hub) drop(client string, c *Center) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.centers[client] == c && c.Len() == 0 {
		delete(h.centers, client)
	}
}
