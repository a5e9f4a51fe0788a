package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissing(t *testing.T) {
	c := New()
	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestSetAndGet(t *testing.T) {
	c := New()
	c.Set("k", 42, time.Minute)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestExpiry(t *testing.T) {
	c := New()
	clock := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return clock }

	c.Set("k", "v", 30*time.Second)

	clock = clock.Add(29 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock = clock.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestOverwriteResetsTTL(t *testing.T) {
	c := New()
	clock := time.Unix(0, 0)
	c.now = func() time.Time { return clock }

	c.Set("k", 1, 10*time.Second)
	clock = clock.Add(8 * time.Second)
	c.Set("k", 2, 10*time.Second)
	clock = clock.Add(8 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}
