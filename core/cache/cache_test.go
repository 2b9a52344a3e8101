package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjwt/jwtvalidator/core/cache"
)

func TestLRUCache_PutGet(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](2)

	prev, existed := c.Put("a", 1)
	assert.False(t, existed)
	assert.Zero(t, prev)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	prev, existed = c.Put("a", 2)
	assert.True(t, existed)
	assert.Equal(t, 1, prev)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	// touch "a" so "b" becomes the least-recently-used entry
	_, _ = c.Get("a")

	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRUCache_EvictCallback(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.NewLRUCache[string, int](1)
	c.SetEvictCallback(func(k string, v int) {
		evicted = append(evicted, k)
	})

	c.Put("a", 1)
	c.Put("b", 2) // evicts "a"

	require.Len(t, evicted, 1)
	assert.Equal(t, "a", evicted[0])

	v, removed := c.Remove("b")
	assert.True(t, removed)
	assert.Equal(t, 2, v)
	assert.Equal(t, []string{"a", "b"}, evicted)
}

func TestLRUCache_Clear(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](4)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}
