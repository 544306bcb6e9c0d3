// Package guardkit is a data-security toolkit for back-office
// applications: security level resolution, tier-based redaction, access
// audit logging, permission gates and referential-integrity-aware
// deletion.
//
// Each concern lives in its own package under pkg/ and can be used on
// its own. This package composes them behind a single constructor for
// the common case:
//
//	svc := guardkit.New(
//	    seclevel.NewPostgresSource(pool),
//	    auditlog.NewPostgresStorage(pool),
//	    "administrators",
//	    guardkit.WithLevelCache(seclevel.NewRedisCache(redisClient, time.Minute)),
//	    guardkit.WithDeletion(registry, refguard.NewPostgresCounter(pool), store),
//	)
//
//	p := guardkit.NewPrincipal("alice", []string{"administrators"}, true)
//
//	filtered, decision := svc.View(ctx, p, "tenants", dataset)
//	if !decision.Allowed {
//	    redirect(w, r, decision.RedirectTo, decision.Message)
//	    return
//	}
//
// Level resolution never fails: callers always get a usable level, at
// worst the public default. Audit logging is best-effort and never
// blocks the operation being audited.
package guardkit
