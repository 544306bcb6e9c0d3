package auditlog

import "errors"

var (
	// ErrStoreFailed wraps entry insert failures.
	ErrStoreFailed = errors.New("auditlog.store_failed")

	// ErrPolicyEnsureFailed wraps auto-create failures for the policy
	// row an entry references.
	ErrPolicyEnsureFailed = errors.New("auditlog.policy_ensure_failed")

	// ErrStatsQueryFailed wraps statistics aggregation failures.
	ErrStatsQueryFailed = errors.New("auditlog.stats_query_failed")
)
