// Package refguard performs referential-integrity-aware deletion.
//
// A Registry declares which record kinds reference which, a Counter
// counts live references in storage, and the Guard combines both with a
// permission gate and the audit log. Records with no references are
// soft-deleted with the time and actor stamped on them; referenced
// records that implement Disableable are switched off instead, so the
// rows pointing at them never dangle. Every state change lands in the
// audit log, and unauthorized callers never touch the record.
//
//	registry := refguard.NewRegistry().
//	    Register("tenants",
//	        refguard.Relation{ReferencingKind: "leases", ForeignKeyField: "tenant_id"},
//	        refguard.Relation{ReferencingKind: "payments", ForeignKeyField: "tenant_id"},
//	    )
//
//	guard := refguard.New(gate, registry,
//	    refguard.NewPostgresCounter(pool), store, resolver, auditLogger)
//
//	ok, msg, outcome, report := guard.SafeDelete(ctx, principal, tenant)
//
// Reference reports are computed fresh on every call and never cached.
package refguard
