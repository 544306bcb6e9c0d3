package auditlog

import "time"

// Action classifies what the audited operation did with the data.
type Action string

const (
	ActionView   Action = "view"
	ActionExport Action = "export"
	ActionDelete Action = "delete"
	ActionUpdate Action = "update"
)

// Entry is one access log row. Entries are append-only and immutable once
// written.
type Entry struct {
	ID            string    `json:"id" bson:"_id"`
	User          string    `json:"user" bson:"user"`
	Action        Action    `json:"action" bson:"action"`
	DataType      string    `json:"data_type" bson:"data_type"`
	ObjectID      string    `json:"object_id,omitempty" bson:"object_id,omitempty"`
	LevelUsed     string    `json:"level_used" bson:"level_used"`
	LevelPriority int       `json:"level_priority" bson:"level_priority"`
	SourceIP      string    `json:"source_ip,omitempty" bson:"source_ip,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Success       bool      `json:"success" bson:"success"`
	ErrorMessage  string    `json:"error_message,omitempty" bson:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`

	// Metadata carries operation-specific context, such as before/after
	// snapshots for state-changing actions.
	Metadata map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Stats summarizes recent audit activity for privileged reporting.
type Stats struct {
	AccessDenied      bool      `json:"access_denied,omitempty"`
	TotalEntries      int64     `json:"total_entries"`
	DistinctDataTypes int64     `json:"distinct_data_types"`
	ActiveUsers       int64     `json:"active_users"`
	Since             time.Time `json:"since"`
}

// EntryOption adds optional fields to an entry before it is written.
type EntryOption func(*Entry)

// WithObjectID records the identifier of the accessed object.
func WithObjectID(id string) EntryOption {
	return func(e *Entry) { e.ObjectID = id }
}

// WithSourceIP records the caller's IP address.
func WithSourceIP(ip string) EntryOption {
	return func(e *Entry) { e.SourceIP = ip }
}

// WithUserAgent records the caller's user agent.
func WithUserAgent(ua string) EntryOption {
	return func(e *Entry) { e.UserAgent = ua }
}

// WithMetadata attaches operation-specific context to the entry.
// Later calls merge into earlier ones, overwriting duplicate keys.
func WithMetadata(md map[string]any) EntryOption {
	return func(e *Entry) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any, len(md))
		}
		for k, v := range md {
			e.Metadata[k] = v
		}
	}
}

// WithFailure marks the entry as a failed attempt with the given reason.
func WithFailure(reason string) EntryOption {
	return func(e *Entry) {
		e.Success = false
		e.ErrorMessage = reason
	}
}
