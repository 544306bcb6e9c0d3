package redact

import "time"

// Dataset is the tagged union of record collection shapes the engine
// filters. Exactly two shapes exist: Tabular result sets carrying row
// timestamps, and Keyed field-addressable records. The tag is the concrete
// type; callers dispatch with a type switch instead of shape sniffing.
type Dataset interface {
	dataset()
}

// Tabular is an ordered result set. The engine only interprets the row
// timestamps; column payloads pass through opaque.
type Tabular struct {
	Rows []TabularRow
}

func (Tabular) dataset() {}

// TabularRow is one row of a tabular dataset. CreatedAt is preferred for
// the recency window; UpdatedAt is the fallback when creation time is
// unknown. Zero timestamps mean the row has no known age.
type TabularRow struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Columns   []any
}

// timestamp returns the row's effective age marker and whether one exists.
func (r TabularRow) timestamp() (time.Time, bool) {
	if !r.CreatedAt.IsZero() {
		return r.CreatedAt, true
	}
	if !r.UpdatedAt.IsZero() {
		return r.UpdatedAt, true
	}
	return time.Time{}, false
}

// Keyed is a collection of field-addressable records subject to
// field-level masking and anonymization.
type Keyed struct {
	Records []map[string]any
}

func (Keyed) dataset() {}
