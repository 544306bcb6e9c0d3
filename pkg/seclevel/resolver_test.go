package seclevel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/seclevel"
)

type testUser struct {
	id     string
	groups []string
}

func (u testUser) UserID() string   { return u.id }
func (u testUser) Groups() []string { return u.groups }

type failingSource struct{}

func (failingSource) Policies(context.Context, []string) ([]seclevel.PolicyRecord, error) {
	return nil, errors.New("store down")
}

func (failingSource) Grants(context.Context, int) ([]seclevel.Grant, error) {
	return nil, errors.New("store down")
}

func testPolicies() []seclevel.PolicyRecord {
	return []seclevel.PolicyRecord{
		{LevelName: "staff", Priority: 4, AuthorizedGroups: []string{"staff"}, Active: true},
		{LevelName: "manager", Priority: 6, AuthorizedGroups: []string{"managers"}, Active: true},
		{LevelName: "director", Priority: 9, AuthorizedGroups: []string{"directors"}, Active: true},
		{LevelName: "ghost", Priority: 10, AuthorizedGroups: []string{"staff"}, Active: false},
	}
}

func testGrants() []seclevel.Grant {
	return []seclevel.Grant{
		{Name: "basic-view", MinPriority: 1, Active: true},
		{Name: "amount-view", MinPriority: 4, ViewAmounts: true, Active: true},
		{Name: "detail-view", MinPriority: 6, ViewPersonalDetails: true, Active: true},
		{Name: "export", MinPriority: 5, Export: true, Active: true},
		{Name: "disabled-grant", MinPriority: 1, Export: true, Active: false},
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := seclevel.NewMemorySource(testPolicies(), testGrants())

	t.Run("no matching policy returns default level", func(t *testing.T) {
		t.Parallel()

		resolver := seclevel.NewResolver(seclevel.NewMemorySource(nil, nil))
		level := resolver.Resolve(ctx, testUser{id: "u1", groups: []string{"unknown"}})

		assert.Equal(t, "public", level.Name)
		assert.Equal(t, 1, level.Priority)
		assert.False(t, level.CanViewAmounts)
		assert.False(t, level.CanViewDetails)
		assert.False(t, level.CanExport)
		assert.True(t, level.Can("basic-view"))
	})

	t.Run("selects max priority policy", func(t *testing.T) {
		t.Parallel()

		resolver := seclevel.NewResolver(source)
		level := resolver.Resolve(ctx, testUser{id: "u2", groups: []string{"staff", "managers"}})

		assert.Equal(t, "manager", level.Name)
		assert.Equal(t, 6, level.Priority)
	})

	t.Run("inactive policy ignored", func(t *testing.T) {
		t.Parallel()

		resolver := seclevel.NewResolver(source)
		level := resolver.Resolve(ctx, testUser{id: "u3", groups: []string{"staff"}})

		assert.Equal(t, "staff", level.Name)
		assert.Equal(t, 4, level.Priority)
	})

	t.Run("aggregates grants below priority", func(t *testing.T) {
		t.Parallel()

		resolver := seclevel.NewResolver(source)
		level := resolver.Resolve(ctx, testUser{id: "u4", groups: []string{"managers"}})

		assert.True(t, level.CanViewAmounts)
		assert.True(t, level.CanViewDetails)
		assert.True(t, level.CanExport)
		assert.True(t, level.Can("amount-view"))
		assert.True(t, level.Can("export"))
		assert.False(t, level.Can("disabled-grant"))
	})

	t.Run("grants above priority excluded", func(t *testing.T) {
		t.Parallel()

		resolver := seclevel.NewResolver(source)
		level := resolver.Resolve(ctx, testUser{id: "u5", groups: []string{"staff"}})

		assert.True(t, level.CanViewAmounts)
		assert.False(t, level.CanViewDetails)
		assert.False(t, level.CanExport)
	})

	t.Run("source failure degrades to default", func(t *testing.T) {
		t.Parallel()

		resolver := seclevel.NewResolver(failingSource{})
		level := resolver.Resolve(ctx, testUser{id: "u6", groups: []string{"directors"}})

		assert.Equal(t, "public", level.Name)
		assert.Equal(t, 1, level.Priority)
	})
}

func TestResolver_Caching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	user := testUser{id: "cached", groups: []string{"managers"}}

	t.Run("idempotent between invalidations", func(t *testing.T) {
		t.Parallel()

		resolver := seclevel.NewResolver(seclevel.NewMemorySource(testPolicies(), testGrants()))
		first := resolver.Resolve(ctx, user)
		second := resolver.Resolve(ctx, user)
		assert.Equal(t, first, second)
	})

	t.Run("cache hit skips source", func(t *testing.T) {
		t.Parallel()

		calls := 0
		source := &countingSource{inner: seclevel.NewMemorySource(testPolicies(), testGrants()), calls: &calls}
		resolver := seclevel.NewResolver(source)

		resolver.Resolve(ctx, user)
		resolver.Resolve(ctx, user)
		assert.Equal(t, 1, calls)
	})

	t.Run("invalidate forces recompute", func(t *testing.T) {
		t.Parallel()

		calls := 0
		source := &countingSource{inner: seclevel.NewMemorySource(testPolicies(), testGrants()), calls: &calls}
		resolver := seclevel.NewResolver(source)

		resolver.Resolve(ctx, user)
		resolver.Invalidate(ctx)
		resolver.Resolve(ctx, user)
		assert.Equal(t, 2, calls)
	})

	t.Run("degraded result is not cached", func(t *testing.T) {
		t.Parallel()

		levelCache := seclevel.NewMemoryCache()
		resolver := seclevel.NewResolver(failingSource{}, seclevel.WithCache(levelCache))

		level := resolver.Resolve(ctx, user)
		require.Equal(t, "public", level.Name)

		_, ok := levelCache.Get(ctx, user.UserID())
		assert.False(t, ok)
		assert.Zero(t, levelCache.Len())
	})

	t.Run("per-user invalidation keeps other users cached", func(t *testing.T) {
		t.Parallel()

		other := testUser{id: "other", groups: []string{"managers"}}

		calls := 0
		source := &countingSource{inner: seclevel.NewMemorySource(testPolicies(), testGrants()), calls: &calls}
		levelCache := seclevel.NewMemoryCache()
		resolver := seclevel.NewResolver(source, seclevel.WithCache(levelCache))

		resolver.Resolve(ctx, user)
		resolver.Resolve(ctx, other)
		require.Equal(t, 2, calls)
		require.Equal(t, 2, levelCache.Len())

		resolver.InvalidateUser(ctx, user.UserID())
		assert.Equal(t, 1, levelCache.Len())

		resolver.Resolve(ctx, other)
		assert.Equal(t, 2, calls, "other user must still be served from cache")

		resolver.Resolve(ctx, user)
		assert.Equal(t, 3, calls, "invalidated user must be recomputed")
	})
}

type countingSource struct {
	inner *seclevel.MemorySource
	calls *int
}

func (s *countingSource) Policies(ctx context.Context, groups []string) ([]seclevel.PolicyRecord, error) {
	*s.calls++
	return s.inner.Policies(ctx, groups)
}

func (s *countingSource) Grants(ctx context.Context, priority int) ([]seclevel.Grant, error) {
	return s.inner.Grants(ctx, priority)
}
