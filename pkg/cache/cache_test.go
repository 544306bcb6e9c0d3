package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/cache"
)

func TestStore_GetSet(t *testing.T) {
	t.Parallel()

	store := cache.NewStore[string, int]()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Set("a", 1)
	store.Set("b", 2)

	v, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	store.Set("a", 10)
	v, ok = store.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	assert.Equal(t, 2, store.Len())
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := cache.NewStore[string, string]()
	store.Set("key", "value")

	v, ok := store.Delete("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = store.Get("key")
	assert.False(t, ok)

	_, ok = store.Delete("key")
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	store := cache.NewStore[int, string]()
	for i := 0; i < 5; i++ {
		store.Set(i, "v")
	}
	require.Equal(t, 5, store.Len())

	store.Clear()
	assert.Equal(t, 0, store.Len())

	_, ok := store.Get(3)
	assert.False(t, ok)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := cache.NewStore[int, int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Set(i, i*2)
			store.Get(i)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}
