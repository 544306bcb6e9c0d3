package gate

import (
	"fmt"

	"github.com/dmitrymomot/guardkit/pkg/capset"
)

// Principal is the identity collaborator contract: an authenticated user
// with group membership and an activity flag.
type Principal interface {
	UserID() string
	Groups() []string
	IsActive() bool
}

// Decision is a guard outcome. Denials always carry an explanatory message
// and a redirect to the principal's own landing area; there are no silent
// denials.
type Decision struct {
	Allowed    bool
	Message    string
	RedirectTo string
}

func allowed() Decision {
	return Decision{Allowed: true}
}

// Gate enforces the request-level tier rules: adding and viewing are open
// to every active, grouped principal, while modifying and deleting are
// reserved for the single top tier.
type Gate struct {
	topGroup  string
	loginPath string
	landings  map[string]string
	fallback  string
}

// Option configures a Gate.
type Option func(*Gate)

// WithLoginPath sets the redirect target for unauthenticated callers.
func WithLoginPath(path string) Option {
	return func(g *Gate) {
		if path != "" {
			g.loginPath = path
		}
	}
}

// WithLandingRoutes maps group names to each group's landing area, used as
// the redirect target on denial. Unknown groups fall back to fallback.
func WithLandingRoutes(routes map[string]string, fallback string) Option {
	return func(g *Gate) {
		g.landings = routes
		if fallback != "" {
			g.fallback = fallback
		}
	}
}

// New creates a Gate with the given top-tier group name. Panics on an
// empty name: a gate that cannot identify the privileged tier would deny
// every modification.
func New(topGroup string, opts ...Option) *Gate {
	if topGroup == "" {
		panic("gate: top tier group cannot be empty")
	}

	g := &Gate{
		topGroup:  topGroup,
		loginPath: "/login",
		fallback:  "/",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanAdd allows record creation for any active, grouped principal.
func (g *Gate) CanAdd(p Principal) Decision {
	return g.baseline(p)
}

// CanView allows record viewing for any active, grouped principal.
// Field-level redaction is the responsibility of the redaction engine,
// not this guard.
func (g *Gate) CanView(p Principal) Decision {
	return g.baseline(p)
}

// CanModify allows record modification only for the top tier.
func (g *Gate) CanModify(p Principal) Decision {
	return g.topTierOnly(p, "modify")
}

// CanDelete allows record deletion only for the top tier.
func (g *Gate) CanDelete(p Principal) Decision {
	return g.topTierOnly(p, "delete")
}

// IsTopTier reports whether the principal passes the baseline checks and
// belongs to the top tier group.
func (g *Gate) IsTopTier(p Principal) bool {
	return g.topTierOnly(p, "").Allowed
}

func (g *Gate) baseline(p Principal) Decision {
	if p == nil || p.UserID() == "" {
		return Decision{
			Message:    "authentication required",
			RedirectTo: g.loginPath,
		}
	}
	if len(p.Groups()) == 0 {
		return Decision{
			Message:    "no group assigned to this account, contact an administrator",
			RedirectTo: g.fallback,
		}
	}
	if !p.IsActive() {
		return Decision{
			Message:    "this account is deactivated",
			RedirectTo: g.loginPath,
		}
	}
	return allowed()
}

func (g *Gate) topTierOnly(p Principal, verb string) Decision {
	if d := g.baseline(p); !d.Allowed {
		return d
	}
	if !capset.Has(p.Groups(), g.topGroup) {
		msg := fmt.Sprintf("only the %s group may %s records", g.topGroup, verb)
		if verb == "" {
			msg = fmt.Sprintf("only the %s group may perform this action", g.topGroup)
		}
		return Decision{
			Message:    msg,
			RedirectTo: g.landingFor(p),
		}
	}
	return allowed()
}

// landingFor returns the principal's own landing area: the route of the
// first group with a configured landing, else the fallback.
func (g *Gate) landingFor(p Principal) string {
	for _, group := range p.Groups() {
		if route, ok := g.landings[group]; ok {
			return route
		}
	}
	return g.fallback
}
