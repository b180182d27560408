package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_DistinguishesPartBoundaries(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("ab"))
	assert.NotEqual(t, Key("a", "b"), Key("a", "c"))
}

func TestGetSet(t *testing.T) {
	c := New(10)
	key := Key("https://example.com", "auto")

	_, hit := c.Get(key, 60000)
	assert.False(t, hit)

	c.Set(key, "cached-value")

	v, hit := c.Get(key, 60000)
	assert.True(t, hit)
	assert.Equal(t, "cached-value", v)
}

func TestGet_MaxAgeZeroBypassesCache(t *testing.T) {
	c := New(10)
	c.Set("k", "v")

	_, hit := c.Get("k", 0)
	assert.False(t, hit)
	_, hit = c.Get("k", -1)
	assert.False(t, hit)
}

func TestSet_EvictsAtCapacity(t *testing.T) {
	c := New(3)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.LessOrEqual(t, len(c.store), 3)
}

func TestConcurrentAccess(t *testing.T) {
	c := New(100)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := Key(fmt.Sprintf("url-%d", j%20))
				c.Set(key, n)
				c.Get(key, 60000)
			}
		}(i)
	}
	wg.Wait()
}
