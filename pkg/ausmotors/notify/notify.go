// Package notify keeps the stack of short-lived toast notifications.
package notify

import (
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTTL is how long a notification stays up without being dismissed
const DefaultTTL = 5 * time.Second

// Kind selects the notification style
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Notification is a single banner
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Center stacks notifications in insertion order. There is no dedup and no limit.
type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	seq    uint64
	items  []Notification
	timers map[string]*time.Timer
	log    *logrus.Logger
	// onEmpty runs, without mu held, when the last notification goes away
	onEmpty func()
}

// NewCenter returns a center whose notifications expire after ttl
func NewCenter(ttl time.Duration, logger *logrus.Logger) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Center{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
		log:    logger,
	}
}

// Notify adds a notification that removes itself after the center's TTL
func (c *Center) Notify(message string, kind Kind) Notification {
	if kind == "" {
		kind = KindInfo
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	n := Notification{
		ID:        "n" + strconv.FormatUint(c.seq, 10),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	c.items = append(c.items, n)
	id := n.ID
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.expire(id) })

	c.log.WithFields(logrus.Fields{"id": id, "kind": kind}).Debug("Notification shown")
	return n
}

// Dismiss removes the notification immediately. It reports whether it was present.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	removed := c.remove(id)
	empty := len(c.items) == 0
	c.mu.Unlock()

	if removed && empty && c.onEmpty != nil {
		c.onEmpty()
	}
	return removed
}

// List returns the current notifications, oldest first
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.items...)
}

// Len returns the number of notifications shown
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Center) expire(id string) {
	c.mu.Lock()
	removed := c.remove(id)
	empty := len(c.items) == 0
	c.mu.Unlock()

	if !removed {
		return
	}
	c.log.WithField("id", id).Debug("Notification expired")
	if empty && c.onEmpty != nil {
		c.onEmpty()
	}
}

func (c *Center) remove(id string) bool {
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}
