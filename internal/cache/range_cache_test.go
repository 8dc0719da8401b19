package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeCacheReturnsStoredValue(t *testing.T) {
	c, err := NewRangeCache[[]string](4)
	require.NoError(t, err)

	_, ok := c.Get("2023-01-01|2023-03-31")
	assert.False(t, ok)

	c.Set("2023-01-01|2023-03-31", []string{"a", "b"})
	got, ok := c.Get("2023-01-01|2023-03-31")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestRangeCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewRangeCache[int](2)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestRangeCachePurge(t *testing.T) {
	c, err := NewRangeCache[int](4)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestRangeCacheDefaultsCapacity(t *testing.T) {
	c, err := NewRangeCache[int](0)
	require.NoError(t, err)

	for i := 0; i < DefaultRangeCacheSize+8; i++ {
		c.Set(fmt.Sprintf("k%02d", i), i)
	}
	assert.Equal(t, DefaultRangeCacheSize, c.Len())
}
