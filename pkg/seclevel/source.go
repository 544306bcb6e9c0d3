package seclevel

import "context"

// Source provides policy and grant configuration. Implementations must
// return only rows they consider current; the resolver filters activity
// and priority itself, so returning inactive rows is also acceptable.
type Source interface {
	// Policies returns the access policy records applying to any of the
	// given groups.
	Policies(ctx context.Context, groups []string) ([]PolicyRecord, error)

	// Grants returns the permission grants available at or below the
	// given priority.
	Grants(ctx context.Context, priority int) ([]Grant, error)
}

// MemorySource is a static in-memory Source, used in tests and for
// applications whose policy set is compiled in.
type MemorySource struct {
	policies []PolicyRecord
	grants   []Grant
}

// NewMemorySource creates a Source backed by the given slices. The slices
// are not copied; callers must not mutate them afterwards.
func NewMemorySource(policies []PolicyRecord, grants []Grant) *MemorySource {
	return &MemorySource{policies: policies, grants: grants}
}

func (s *MemorySource) Policies(_ context.Context, groups []string) ([]PolicyRecord, error) {
	var out []PolicyRecord
	for _, p := range s.policies {
		if p.AppliesTo(groups) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemorySource) Grants(_ context.Context, priority int) ([]Grant, error) {
	var out []Grant
	for _, g := range s.grants {
		if g.Active && g.MinPriority <= priority {
			out = append(out, g)
		}
	}
	return out, nil
}
