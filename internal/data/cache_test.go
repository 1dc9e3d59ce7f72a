package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	c := NewTTLCache[string, int](time.Minute)
	require.NotNil(t, c)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "expired")
	assert.Equal(t, 1, c.Len())

	c.Sweep()
	assert.Equal(t, 0, c.Len())

	c.Set("b", 2)
	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestTTLCache_NilIsDisabled(t *testing.T) {
	c := NewTTLCache[string, int](0)
	assert.Nil(t, c)

	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	c.Sweep()
	c.Clear()
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("solana", "usd", "7d"), cacheKey("solana", "usd", "7d"))
	assert.NotEqual(t, cacheKey("solana", "usd", "7d"), cacheKey("solana", "usd", "30d"))
	assert.Len(t, cacheKey("x"), 64)
}
