// Package seclevel resolves a user's security tier from group membership
// and policy configuration.
//
// Resolution selects the highest-priority active policy granted to any of
// the user's groups, then aggregates every active permission grant whose
// minimum priority is at or below the selected one: grant names form the
// capability set and the view/export flags are OR-combined. Users with no
// matching policy get the public tier (priority 1, basic viewing only).
//
// Resolve never returns an error. Missing configuration and source
// failures degrade to the default level, so a broken policy store can
// only ever reduce privileges.
//
// Results are cached per user ID in an injected Cache (in-process by
// default, Redis-backed for multi-instance deployments) and stay valid
// until an explicit Invalidate call:
//
//	resolver := seclevel.NewResolver(source)
//	level := resolver.Resolve(ctx, user)
//	if level.CanExport { ... }
//
//	// after editing policies or grants:
//	resolver.Invalidate(ctx)
package seclevel
