package refguard

import "time"

// Record is the minimal contract a deletion candidate must satisfy.
type Record interface {
	// Kind names the record type, matching the kind registered in the
	// Registry and the storage table the record lives in.
	Kind() string
	// RecordID returns the record's stable identifier.
	RecordID() string
}

// SoftDeletable records support logical deletion: the row survives but is
// marked deleted with the time and actor stamped on it.
type SoftDeletable interface {
	MarkDeleted(at time.Time, by string)
}

// Disableable records can be switched off while remaining referencable,
// which is the safe alternative when live references prevent deletion.
type Disableable interface {
	Enabled() bool
	SetEnabled(enabled bool)
}

// ModelReferences describes the references one record kind holds against
// the deletion candidate.
type ModelReferences struct {
	ModelName string   `json:"model_name"`
	FieldName string   `json:"field_name"`
	Count     int64    `json:"count"`
	SampleIDs []string `json:"sample_ids,omitempty"`
}

// ReferenceReport summarizes every live reference to a record. An empty
// report means the record is safe to remove outright.
type ReferenceReport struct {
	HasReferences   bool              `json:"has_references"`
	TotalReferences int64             `json:"total_references"`
	PerModel        []ModelReferences `json:"per_model,omitempty"`
}
