package seclevel

import (
	"context"

	"github.com/dmitrymomot/guardkit/pkg/cache"
)

// Cache stores resolved levels per user ID. Implementations are
// best-effort: a failing backend behaves as a miss and never surfaces an
// error to resolution.
type Cache interface {
	Get(ctx context.Context, userID string) (Level, bool)
	Set(ctx context.Context, userID string, level Level)
	Delete(ctx context.Context, userID string)
	Clear(ctx context.Context)
}

// MemoryCache is the default in-process Cache.
type MemoryCache struct {
	store *cache.Store[string, Level]
}

// NewMemoryCache creates an empty in-process level cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{store: cache.NewStore[string, Level]()}
}

func (c *MemoryCache) Get(_ context.Context, userID string) (Level, bool) {
	return c.store.Get(userID)
}

func (c *MemoryCache) Set(_ context.Context, userID string, level Level) {
	c.store.Set(userID, level)
}

func (c *MemoryCache) Delete(_ context.Context, userID string) {
	c.store.Delete(userID)
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.store.Clear()
}

// Len reports how many levels are currently cached.
func (c *MemoryCache) Len() int {
	return c.store.Len()
}
