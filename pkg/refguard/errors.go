package refguard

import "errors"

var (
	// ErrReferenceCheckFailed wraps storage errors raised while counting
	// live references. The guard treats the record as undeletable when
	// the check cannot complete.
	ErrReferenceCheckFailed = errors.New("refguard.reference_check_failed")
)
