// Package auditlog records every protected access and export attempt in an
// append-only trail.
//
// Writes are best-effort by contract: an audit failure must never abort
// the business operation it documents. Failures are logged, handed to an
// optional ErrorObserver for monitoring and tests, and then swallowed.
// When an entry references a policy row that does not exist yet, the row
// is synthesized first so the reference stays valid.
//
// Storage backends: in-memory (tests, defaults), PostgreSQL (pgx), and
// MongoDB for document-store reporting stacks.
//
//	logger := auditlog.New(storage, resolver,
//	    auditlog.WithErrorObserver(func(ctx context.Context, err error) {
//	        metrics.Inc("audit_write_failures")
//	    }),
//	)
//
//	logger.Log(ctx, user.UserID(), auditlog.ActionView, "payments", level,
//	    auditlog.WithRequest(r),
//	)
//
//	if logger.ExportCheck(ctx, user, "payments") {
//	    // proceed with export
//	}
package auditlog
