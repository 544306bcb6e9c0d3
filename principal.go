package guardkit

import "context"

// Principal is a concrete caller identity accepted by every guardkit
// component: the level resolver, the permission gate, the audit log and
// the deletion guard.
type Principal struct {
	id     string
	groups []string
	active bool
}

// NewPrincipal creates a principal. An empty id or group list is valid
// and simply fails the corresponding gate checks downstream.
func NewPrincipal(id string, groups []string, active bool) Principal {
	return Principal{id: id, groups: groups, active: active}
}

func (p Principal) UserID() string   { return p.id }
func (p Principal) Groups() []string { return p.groups }
func (p Principal) IsActive() bool   { return p.active }

type principalCtxKey struct{}

// WithPrincipal stores the principal in the context, typically in an
// authentication middleware.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext retrieves the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}
