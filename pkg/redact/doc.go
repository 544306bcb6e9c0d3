// Package redact filters, masks and anonymizes record collections
// according to a resolved security level before data leaves the engine.
//
// Two dataset shapes exist as a tagged union: Tabular result sets are
// restricted to a 90-day window for lower tiers and capped by row count
// (100 rows below priority 5, 500 below priority 8, uncapped above);
// Keyed records get field-level treatment: monetary fields become "***"
// without amount access, identifying fields keep their first two
// characters with the rest starred without detail access, and below
// priority 3 record ids are replaced with a deterministic anonymous ID.
//
// Every Filter call writes exactly one audit view entry through the
// injected Recorder. Mask collapses financial and personal sub-sections
// into summaries for tiers below priority 6 without an audit side effect.
//
//	engine := redact.NewEngine(auditLogger)
//
//	filtered := engine.Filter(ctx, user.UserID(), level, "payments", redact.Keyed{
//	    Records: records,
//	})
package redact
