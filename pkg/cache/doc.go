// Package cache provides a minimal thread-safe in-memory store used for
// caching derived values that are cheap to recompute but read frequently,
// such as resolved security levels keyed by user ID.
//
// The store trades eviction policy for simplicity: entries live until the
// caller clears the store. This matches configuration-derived data whose
// only invalidation trigger is an explicit configuration change.
//
// Basic usage:
//
//	store := cache.NewStore[string, int]()
//	store.Set("user-1", 7)
//
//	if v, ok := store.Get("user-1"); ok {
//	    // use cached value
//	}
//
//	store.Clear() // configuration changed, drop everything
package cache
