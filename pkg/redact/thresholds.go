package redact

import "time"

// Thresholds holds the priority cutoffs and limits driving redaction.
// The defaults reproduce the established policy exactly; they are
// externalized so future configuration can tune them without code changes.
type Thresholds struct {
	// RecentWindow restricts low tiers to recent rows.
	RecentWindow time.Duration

	// AnonymizePriority: below it, record identifiers are anonymized.
	AnonymizePriority int

	// SmallCapPriority: below it, tabular results cap at SmallCap rows.
	SmallCapPriority int
	SmallCap         int

	// WindowPriority: below it, the recency window applies.
	WindowPriority int

	// LargeCapPriority: below it, tabular results cap at LargeCap rows;
	// at or above it results are uncapped.
	LargeCapPriority int
	LargeCap         int

	// SectionPriority: below it, financial and personal sub-sections
	// collapse to summaries.
	SectionPriority int
}

// DefaultThresholds returns the established policy values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RecentWindow:      90 * 24 * time.Hour,
		AnonymizePriority: 3,
		SmallCapPriority:  5,
		SmallCap:          100,
		WindowPriority:    7,
		LargeCapPriority:  8,
		LargeCap:          500,
		SectionPriority:   6,
	}
}
