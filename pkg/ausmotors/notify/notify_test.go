package notify

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNotifyStacks(t *testing.T) {
	c := NewCenter(time.Minute, quietLogger())

	first := c.Notify("Thank you for subscribing!", KindSuccess)
	second := c.Notify("Thank you for subscribing!", "")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, KindInfo, second.Kind)

	list := c.List()
	assert.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestNotifyAutoDismiss(t *testing.T) {
	c := NewCenter(20*time.Millisecond, quietLogger())
	c.Notify("saved", KindSuccess)
	assert.Equal(t, 1, c.Len())

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestDismissIsImmediate(t *testing.T) {
	c := NewCenter(time.Hour, quietLogger())
	keep := c.Notify("keep", KindInfo)
	drop := c.Notify("drop", KindError)

	assert.True(t, c.Dismiss(drop.ID))
	assert.Equal(t, []Notification{keep}, c.List())

	assert.False(t, c.Dismiss(drop.ID))
	assert.False(t, c.Dismiss("missing"))
}

func TestDefaultTTL(t *testing.T) {
	c := NewCenter(0, nil)
	assert.Equal(t, DefaultTTL, c.ttl)
}
