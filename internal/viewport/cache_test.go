package viewport

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock управляемые часы для тестов TTL
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)}
}

func TestCache_TTLBoundary(t *testing.T) {
	clock := newClock()
	c := NewCache[string](10)
	c.now = clock.now

	c.Set("k", "v", time.Minute)

	clock.advance(time.Minute - time.Millisecond)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	// ровно ExpiresAt еще валидно
	clock.advance(time.Millisecond)
	_, ok = c.Get("k")
	assert.True(t, ok)

	clock.advance(time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Zero(t, c.Len(), "expired entry is dropped on read")
}

func TestCache_EvictsOldestTenPercent(t *testing.T) {
	clock := newClock()
	c := NewCache[int](20)
	c.now = clock.now

	for i := range 20 {
		c.Set(fmt.Sprintf("k%02d", i), i, time.Hour)
		clock.advance(time.Second)
	}
	require.Equal(t, 20, c.Len())

	c.Set("new", 99, time.Hour)
	assert.Equal(t, 19, c.Len())
	for _, gone := range []string{"k00", "k01"} {
		_, ok := c.Get(gone)
		assert.False(t, ok, gone)
	}
	_, ok := c.Get("k02")
	assert.True(t, ok)
	_, ok = c.Get("new")
	assert.True(t, ok)
}

func TestCache_EvictsAtLeastOne(t *testing.T) {
	clock := newClock()
	c := NewCache[int](3)
	c.now = clock.now

	for i := range 3 {
		c.Set(fmt.Sprintf("k%d", i), i, time.Hour)
		clock.advance(time.Second)
	}
	c.Set("k3", 3, time.Hour)

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("k0")
	assert.False(t, ok)
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	c := NewCache[int](2)
	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)
	c.Set("a", 3, time.Hour)

	assert.Equal(t, 2, c.Len())
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestCache_CleanupDeleteClear(t *testing.T) {
	clock := newClock()
	c := NewCache[int](10)
	c.now = clock.now

	c.Set("short", 1, time.Second)
	c.Set("long", 2, time.Hour)
	c.Set("other", 3, time.Hour)

	clock.advance(2 * time.Second)
	assert.Equal(t, 1, c.Cleanup())
	assert.Equal(t, 2, c.Len())

	c.Delete("long")
	_, ok := c.Get("long")
	assert.False(t, ok)

	c.Clear()
	assert.Zero(t, c.Len())
}
