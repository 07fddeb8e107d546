package cache

import (
	"cmp"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntCache(t *testing.T, size int) *Cache[int, string] {
	c, err := New[int, string](size, HashOrdered[int], cmp.Compare[int])
	require.NoError(t, err)
	return c
}

func TestCacheBasics(t *testing.T) {
	t.Parallel()

	c := newIntCache(t, 10)

	// Test cache miss
	_, hit := c.Get(1)
	assert.False(t, hit, "Expected cache miss for key 1")

	c.Put(1, "one")

	val, hit := c.Get(1)
	assert.True(t, hit, "Expected cache hit for key 1")
	assert.Equal(t, "one", val)
	assert.Equal(t, 1, c.Size())

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)

	c.ClearStats()
	assert.Equal(t, Stats{}, c.Stats())
}

func TestCacheUpdateOnlyRefreshesCachedKeys(t *testing.T) {
	t.Parallel()

	c := newIntCache(t, 10)

	c.Update(7, "seven")
	assert.Equal(t, 0, c.Size(), "update must not populate the cache")

	c.Put(7, "seven")
	c.Update(7, "SEVEN")
	val, hit := c.Get(7)
	assert.True(t, hit)
	assert.Equal(t, "SEVEN", val)
}

func TestCacheDelete(t *testing.T) {
	t.Parallel()

	c := newIntCache(t, 10)
	c.Put(1, "one")
	c.Put(2, "two")

	c.Delete(1)
	c.Delete(42) // absent

	_, hit := c.Get(1)
	assert.False(t, hit)
	_, hit = c.Get(2)
	assert.True(t, hit)

	c.Purge()
	assert.Equal(t, 0, c.Size())
}

func TestCacheEviction(t *testing.T) {
	t.Parallel()

	c := newIntCache(t, MinCacheSize)
	for i := 0; i < MinCacheSize*4; i++ {
		c.Put(i, fmt.Sprint(i))
	}

	assert.LessOrEqual(t, c.Size(), MinCacheSize)
	assert.NotZero(t, c.Stats().Evictions)
}

func TestCacheCollisionIsMiss(t *testing.T) {
	t.Parallel()

	// Every key hashes alike: the stored key decides whether it is a hit
	c, err := New[string, int](MinCacheSize, func(string) uint64 { return 1 }, cmp.Compare[string])
	require.NoError(t, err)

	c.Put("a", 1)
	_, hit := c.Get("b")
	assert.False(t, hit)

	c.Delete("b")
	val, hit := c.Get("a")
	assert.True(t, hit, "delete of a colliding key leaves the entry alone")
	assert.Equal(t, 1, val)
}

func TestHashOrdered(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HashOrdered("key"), HashOrdered("key"))
	assert.NotEqual(t, HashOrdered("key1"), HashOrdered("key2"))
	assert.NotEqual(t, HashOrdered(1), HashOrdered(2))
	assert.Equal(t, HashOrdered(int64(5)), HashOrdered(int64(5)))
	assert.Equal(t, HashOrdered(math.Copysign(0, -1)), HashOrdered(0.0), "-0 and +0 compare equal")
	assert.Equal(t, HashOrdered(math.NaN()), HashOrdered(-math.NaN()))

	type name string
	assert.Equal(t, HashOrdered(name("x")), HashOrdered(name("x")))
	assert.Equal(t, HashOrdered("x"), HashOrdered(name("x")))
}

func TestHashOrderedNamedKinds(t *testing.T) {
	t.Parallel()

	type celsius float64
	type level int16
	type mask uint32

	assert.Equal(t, HashOrdered(celsius(math.Copysign(0, -1))), HashOrdered(celsius(0)), "-0 and +0 compare equal")
	assert.Equal(t, HashOrdered(celsius(math.NaN())), HashOrdered(celsius(-math.NaN())))
	assert.Equal(t, HashOrdered(1.5), HashOrdered(celsius(1.5)))
	assert.NotEqual(t, HashOrdered(celsius(1.5)), HashOrdered(celsius(2.5)))

	assert.Equal(t, HashOrdered(int16(-3)), HashOrdered(level(-3)))
	assert.NotEqual(t, HashOrdered(level(3)), HashOrdered(level(4)))
	assert.Equal(t, HashOrdered(uint32(7)), HashOrdered(mask(7)))
}

func TestCacheNamedFloatZero(t *testing.T) {
	t.Parallel()

	type celsius float64
	c, err := New[celsius, string](16, HashOrdered[celsius], cmp.Compare[celsius])
	require.NoError(t, err)

	c.Put(0, "zero")
	negZero := celsius(math.Copysign(0, -1))

	// An update through the other zero refreshes the same entry
	c.Update(negZero, "overwritten")
	val, hit := c.Get(0)
	assert.True(t, hit)
	assert.Equal(t, "overwritten", val)

	c.Delete(negZero)
	_, hit = c.Get(0)
	assert.False(t, hit)
}
