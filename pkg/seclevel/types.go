package seclevel

import "github.com/dmitrymomot/guardkit/pkg/capset"

// Level is a user's resolved security tier. It is derived from policy
// configuration, cached, and never persisted.
type Level struct {
	Name           string   `json:"name"`
	Priority       int      `json:"priority"`
	Capabilities   []string `json:"capabilities"`
	CanViewAmounts bool     `json:"can_view_amounts"`
	CanViewDetails bool     `json:"can_view_details"`
	CanExport      bool     `json:"can_export"`
}

// Can reports whether the level carries the named capability.
func (l Level) Can(capability string) bool {
	return capset.Has(l.Capabilities, capability)
}

// DefaultLevelName is the tier assigned when no policy matches the user.
const DefaultLevelName = "public"

// BasicViewCapability is the only capability the default tier carries.
const BasicViewCapability = "basic-view"

// DefaultLevel returns the public fallback tier: lowest priority, basic
// viewing only, no amounts, no personal details, no export.
func DefaultLevel() Level {
	return Level{
		Name:         DefaultLevelName,
		Priority:     1,
		Capabilities: []string{BasicViewCapability},
	}
}

// PolicyRecord is an access policy configuration row granting a level to
// one or more identity groups.
type PolicyRecord struct {
	LevelName        string
	Priority         int
	AuthorizedGroups []string
	Active           bool
}

// AppliesTo reports whether the policy is active and grants its level to
// any of the given groups.
func (p PolicyRecord) AppliesTo(groups []string) bool {
	if !p.Active {
		return false
	}
	for _, g := range groups {
		if capset.Has(p.AuthorizedGroups, g) {
			return true
		}
	}
	return false
}

// Grant is a permission grant configuration row. Every active grant whose
// MinPriority is at or below the user's resolved priority contributes its
// name to the capability set and ORs its view/export flags into the level.
type Grant struct {
	Name                string
	MinPriority         int
	ViewAmounts         bool
	ViewPersonalDetails bool
	Export              bool
	Active              bool
}
