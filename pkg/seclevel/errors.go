package seclevel

import "errors"

var (
	// ErrSourceQueryFailed wraps configuration store failures. The
	// resolver absorbs it and degrades to the default level.
	ErrSourceQueryFailed = errors.New("seclevel.source_query_failed")
)
