package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubScopesByClient(t *testing.T) {
	h := NewHub(time.Minute, quietLogger())

	n := h.Notify("alice", "Thank you for subscribing!", KindSuccess)
	assert.Len(t, h.List("alice"), 1)
	assert.Empty(t, h.List("bob"))

	assert.False(t, h.Dismiss("bob", n.ID))
	assert.Len(t, h.List("alice"), 1)

	assert.True(t, h.Dismiss("alice", n.ID))
	assert.Empty(t, h.List("alice"))
	assert.Equal(t, 0, h.Clients())
}

func TestHubDropsExpiredClients(t *testing.T) {
	h := NewHub(20*time.Millisecond, quietLogger())
	h.Notify("alice", "one", KindInfo)
	h.Notify("alice", "two", KindInfo)
	h.Notify("bob", "three", KindInfo)
	require.Equal(t, 2, h.Clients())

	assert.Eventually(t, func() bool { return h.Clients() == 0 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, h.List("alice"))
}

func TestHubKeepsCenterWhileNotEmpty(t *testing.T) {
	h := NewHub(time.Hour, quietLogger())
	first := h.Notify("alice", "one", KindInfo)
	h.Notify("alice", "two", KindInfo)

	assert.True(t, h.Dismiss("alice", first.ID))
	assert.Equal(t, 1, h.Clients())
	assert.Len(t, h.List("alice"), 1)
}
