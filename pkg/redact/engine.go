package redact

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrymomot/guardkit/pkg/auditlog"
	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
	"github.com/dmitrymomot/guardkit/pkg/seclevel"
)

// amountKeywords mark fields holding monetary values. Both the English
// and the localized field names in circulation are covered.
var amountKeywords = []string{
	"amount", "montant",
	"price", "prix",
	"rent", "loyer",
	"charge",
	"cost", "cout", "coût",
}

// detailFields are personally identifying fields masked for tiers without
// detail access. Keys compare case-insensitively with separators ignored,
// so "firstName", "first_name" and "firstname" all match.
var detailFields = map[string]struct{}{
	"name":          {},
	"firstname":     {},
	"email":         {},
	"phone":         {},
	"address":       {},
	"accountnumber": {},
	"iban":          {},
	"idnumber":      {},
}

const (
	idField          = "id"
	anonymousIDField = "anonymousId"

	financialSection = "financial-details"
	personalSection  = "personal-information"

	detailKeepRunes = 2
)

// Recorder is the audit collaborator: every Filter call produces exactly
// one view entry through it.
type Recorder interface {
	Log(ctx context.Context, user string, action auditlog.Action, dataType string, level seclevel.Level, opts ...auditlog.EntryOption)
}

// Engine applies tier-based filtering, masking and anonymization to record
// collections before they leave the data layer.
type Engine struct {
	audit      Recorder
	thresholds Thresholds
	anonKey    []byte
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithThresholds overrides the default redaction thresholds.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithAnonymizationKey sets the key for anonymous ID derivation. The key
// must be at most 64 bytes. Changing the key changes every derived ID.
func WithAnonymizationKey(key []byte) Option {
	return func(e *Engine) {
		if len(key) > 0 {
			e.anonKey = key
		}
	}
}

// WithClock overrides the recency-window reference time. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a redaction engine. The audit recorder is required:
// unaudited redaction is not a supported mode. Panics on a nil recorder or
// an oversized anonymization key.
func NewEngine(audit Recorder, opts ...Option) *Engine {
	if audit == nil {
		panic("redact: audit recorder cannot be nil")
	}

	e := &Engine{
		audit:      audit,
		thresholds: DefaultThresholds(),
		anonKey:    defaultAnonymizationKey,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if len(e.anonKey) > 64 {
		panic("redact: anonymization key must be at most 64 bytes")
	}
	return e
}

// Filter redacts a dataset according to the level and writes one audit
// view entry for the access. The input dataset is never mutated.
//
// Tabular datasets are windowed and capped by row count; keyed datasets
// get field-level masking. Records with every field masked are kept:
// besides the row caps, nothing is silently dropped.
func (e *Engine) Filter(ctx context.Context, user string, level seclevel.Level, dataType string, ds Dataset, auditOpts ...auditlog.EntryOption) Dataset {
	e.audit.Log(ctx, user, auditlog.ActionView, dataType, level, auditOpts...)

	switch d := ds.(type) {
	case Tabular:
		return e.filterTabular(d, level)
	case Keyed:
		return e.filterKeyed(d, level)
	default:
		return ds
	}
}

func (e *Engine) filterTabular(d Tabular, level seclevel.Level) Tabular {
	rows := d.Rows

	if level.Priority < e.thresholds.WindowPriority {
		cutoff := e.now().Add(-e.thresholds.RecentWindow)
		kept := make([]TabularRow, 0, len(rows))
		for _, row := range rows {
			ts, ok := row.timestamp()
			if ok && !ts.Before(cutoff) {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	limit := -1
	switch {
	case level.Priority < e.thresholds.SmallCapPriority:
		limit = e.thresholds.SmallCap
	case level.Priority < e.thresholds.LargeCapPriority:
		limit = e.thresholds.LargeCap
	}
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]TabularRow, len(rows))
	copy(out, rows)
	return Tabular{Rows: out}
}

func (e *Engine) filterKeyed(d Keyed, level seclevel.Level) Keyed {
	out := make([]map[string]any, 0, len(d.Records))
	for _, record := range d.Records {
		out = append(out, e.redactRecord(record, level))
	}
	return Keyed{Records: out}
}

func (e *Engine) redactRecord(record map[string]any, level seclevel.Level) map[string]any {
	result := make(map[string]any, len(record))
	for k, v := range record {
		result[k] = v
	}

	if !level.CanViewAmounts {
		for k, v := range result {
			if isAmountField(k) && isNumeric(v) {
				result[k] = "***"
			}
		}
	}

	if !level.CanViewDetails {
		for k, v := range result {
			if !isDetailField(k) {
				continue
			}
			if s, ok := v.(string); ok && len([]rune(s)) > detailKeepRunes {
				result[k] = sanitizer.MaskTail(s, detailKeepRunes)
			}
		}
	}

	if level.Priority < e.thresholds.AnonymizePriority {
		if id, ok := result[idField]; ok {
			delete(result, idField)
			result[anonymousIDField] = anonymousID(e.anonKey, id)
		}
	}

	return result
}

// Mask collapses privileged sub-sections of a single record into summaries
// for tiers below the section threshold. Unlike Filter, Mask has no audit
// side effect: it runs on records whose access was already logged.
func (e *Engine) Mask(record map[string]any, level seclevel.Level) map[string]any {
	if level.Priority >= e.thresholds.SectionPriority {
		return record
	}

	result := make(map[string]any, len(record))
	for k, v := range record {
		result[k] = v
	}

	if _, ok := result[financialSection]; ok {
		result[financialSection] = map[string]any{
			"summaryAvailable":   true,
			"fullAccessRequires": "secret-or-higher",
		}
	}

	if section, ok := result[personalSection]; ok {
		result[personalSection] = map[string]any{
			"count":         sectionSize(section),
			"detailsMasked": true,
		}
	}

	return result
}

func isAmountField(key string) bool {
	k := strings.ToLower(key)
	for _, keyword := range amountKeywords {
		if strings.Contains(k, keyword) {
			return true
		}
	}
	return false
}

func isDetailField(key string) bool {
	k := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(key))
	_, ok := detailFields[k]
	return ok
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func sectionSize(v any) int {
	switch s := v.(type) {
	case map[string]any:
		return len(s)
	case []any:
		return len(s)
	case []map[string]any:
		return len(s)
	default:
		return 1
	}
}
