package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetMiss(t *testing.T) {
	c := New(time.Hour)

	_, ok := c.Get("authors")
	assert.False(t, ok)
}

func TestSetGet(t *testing.T) {
	c := New(time.Hour)
	c.Set("authors", []string{"ada"})

	value, ok := c.Get("authors")
	assert.True(t, ok)
	assert.Equal(t, []string{"ada"}, value)
}

func TestExpiry(t *testing.T) {
	now := time.Now()
	c := NewWithClock(6*time.Hour, func() time.Time { return now })

	c.Set("authors", "cached")

	// Just before the TTL the entry is still served.
	now = now.Add(6*time.Hour - time.Second)
	_, ok := c.Get("authors")
	assert.True(t, ok)

	// Past the TTL it is gone.
	now = now.Add(2 * time.Second)
	_, ok = c.Get("authors")
	assert.False(t, ok)
}

func TestSetResetsTTL(t *testing.T) {
	now := time.Now()
	c := NewWithClock(time.Hour, func() time.Time { return now })

	c.Set("authors", "old")
	now = now.Add(45 * time.Minute)
	c.Set("authors", "new")

	now = now.Add(30 * time.Minute)
	value, ok := c.Get("authors")
	assert.True(t, ok)
	assert.Equal(t, "new", value)
}

func TestInvalidate(t *testing.T) {
	c := New(time.Hour)
	c.Set("authors", "cached")

	c.Invalidate("authors")

	_, ok := c.Get("authors")
	assert.False(t, ok)
}
