package seclevel

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/guardkit/pkg/capset"
)

// User is the identity collaborator contract the resolver needs: a stable
// identifier for caching and the group memberships that select policies.
type User interface {
	UserID() string
	Groups() []string
}

// Resolver maps users to security levels. Resolution never fails: source
// errors and missing configuration degrade to the default public level.
type Resolver struct {
	source Source
	cache  Cache
	log    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache replaces the default in-process cache. Useful for sharing
// resolved levels across instances via Redis, or for injecting a fresh
// cache per test case.
func WithCache(c Cache) Option {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithLogger sets the diagnostic logger for degraded resolutions.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a Resolver reading configuration from source.
// Panics if source is nil, matching fail-fast initialization elsewhere.
func NewResolver(source Source, opts ...Option) *Resolver {
	if source == nil {
		panic("seclevel: source cannot be nil")
	}

	r := &Resolver{
		source: source,
		cache:  NewMemoryCache(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the user's security level, from cache when available.
// Two calls without an intervening Invalidate return identical results.
func (r *Resolver) Resolve(ctx context.Context, user User) Level {
	id := user.UserID()
	if level, ok := r.cache.Get(ctx, id); ok {
		return level
	}

	level, degraded := r.compute(ctx, user)
	if !degraded {
		// Degraded results are not cached: a transient source failure
		// must not pin a user to the public tier until Invalidate.
		r.cache.Set(ctx, id, level)
	}
	return level
}

// Invalidate clears every cached level. Call after policy or grant
// configuration changes.
func (r *Resolver) Invalidate(ctx context.Context) {
	r.cache.Clear(ctx)
}

// InvalidateUser drops one user's cached level. Call when the user's
// group membership changes; other users keep their cached levels.
func (r *Resolver) InvalidateUser(ctx context.Context, userID string) {
	r.cache.Delete(ctx, userID)
}

func (r *Resolver) compute(ctx context.Context, user User) (Level, bool) {
	policies, err := r.source.Policies(ctx, user.Groups())
	if err != nil {
		r.log.WarnContext(ctx, "policy lookup failed, using default level",
			"user", user.UserID(), "error", err)
		return DefaultLevel(), true
	}

	selected, found := selectPolicy(policies, user.Groups())

	level := DefaultLevel()
	if found {
		level = Level{
			Name:     selected.LevelName,
			Priority: selected.Priority,
		}
	}

	grants, err := r.source.Grants(ctx, level.Priority)
	if err != nil {
		r.log.WarnContext(ctx, "grant lookup failed, level has base capabilities only",
			"user", user.UserID(), "error", err)
		if !found {
			return DefaultLevel(), true
		}
		level.Capabilities = nil
		return level, true
	}

	names := make([]string, 0, len(grants))
	for _, g := range grants {
		if !g.Active || g.MinPriority > level.Priority {
			continue
		}
		names = append(names, g.Name)
		level.CanViewAmounts = level.CanViewAmounts || g.ViewAmounts
		level.CanViewDetails = level.CanViewDetails || g.ViewPersonalDetails
		level.CanExport = level.CanExport || g.Export
	}
	level.Capabilities = capset.Union(level.Capabilities, names)

	return level, false
}

// selectPolicy picks the active policy with the highest priority among
// those applying to the groups. Ties break on level name for determinism.
func selectPolicy(policies []PolicyRecord, groups []string) (PolicyRecord, bool) {
	var best PolicyRecord
	found := false
	for _, p := range policies {
		if !p.AppliesTo(groups) {
			continue
		}
		if !found || p.Priority > best.Priority ||
			(p.Priority == best.Priority && p.LevelName < best.LevelName) {
			best = p
			found = true
		}
	}
	return best, found
}
