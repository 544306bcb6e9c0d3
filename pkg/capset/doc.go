// Package capset provides helpers for working with capability sets: flat
// string labels (such as "basic-view" or "full-access") granted to a
// resolved security level.
//
// Capability sets are plain string slices so that they serialize naturally
// to configuration rows and log entries. The helpers keep sets normalized
// (sorted, deduplicated) which makes resolved levels comparable in tests.
//
// Basic usage:
//
//	caps := capset.Union(
//	    []string{"basic-view"},
//	    []string{"export", "basic-view"},
//	)
//	// caps == []string{"basic-view", "export"}
//
//	if capset.Has(caps, "export") {
//	    // allow data export
//	}
package capset
