package refguard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/guardkit/pkg/auditlog"
	"github.com/dmitrymomot/guardkit/pkg/gate"
	"github.com/dmitrymomot/guardkit/pkg/seclevel"
)

// sampleLimit caps how many referencing identifiers a report carries per
// relation. The report is a diagnostic for operators, not a full listing.
const sampleLimit = 3

// Counter counts rows of a kind whose field equals the target identifier
// and returns up to limit sample identifiers.
type Counter interface {
	Count(ctx context.Context, kind, field, targetID string, limit int) (int64, []string, error)
}

// Store persists records the guard has mutated.
type Store interface {
	Update(ctx context.Context, record Record) error
}

// Authorizer decides whether a principal may delete records at all.
// *gate.Gate satisfies it.
type Authorizer interface {
	CanDelete(p gate.Principal) gate.Decision
}

// LevelResolver supplies the security level written into audit entries.
type LevelResolver interface {
	Resolve(ctx context.Context, user seclevel.User) seclevel.Level
}

// Recorder is the audit collaborator for deletion outcomes.
type Recorder interface {
	Log(ctx context.Context, user string, action auditlog.Action, dataType string, level seclevel.Level, opts ...auditlog.EntryOption)
}

// Outcome names what SafeDelete actually did to the record.
type Outcome string

const (
	// OutcomeNone means the record was left untouched.
	OutcomeNone Outcome = "none"
	// OutcomeHardDelete means the record was removed from circulation
	// with deletion metadata stamped on it.
	OutcomeHardDelete Outcome = "hardDelete"
	// OutcomeSoftDisable means the record was switched off but kept
	// because live references still point at it.
	OutcomeSoftDisable Outcome = "softDisable"
)

// Guard performs referential-integrity-aware deletion. Reference reports
// are computed fresh on every call; they are never cached, so a check
// immediately before a delete sees the current state.
type Guard struct {
	authorizer Authorizer
	registry   *Registry
	counter    Counter
	store      Store
	resolver   LevelResolver
	audit      Recorder
	log        *slog.Logger
	now        func() time.Time
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) { g.log = log }
}

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// New creates a Guard. It panics when any collaborator is nil because a
// partially wired guard would silently skip authorization or auditing.
func New(authorizer Authorizer, registry *Registry, counter Counter, store Store, resolver LevelResolver, audit Recorder, opts ...Option) *Guard {
	if authorizer == nil {
		panic("refguard: authorizer cannot be nil")
	}
	if registry == nil {
		panic("refguard: registry cannot be nil")
	}
	if counter == nil {
		panic("refguard: counter cannot be nil")
	}
	if store == nil {
		panic("refguard: store cannot be nil")
	}
	if resolver == nil {
		panic("refguard: resolver cannot be nil")
	}
	if audit == nil {
		panic("refguard: audit recorder cannot be nil")
	}
	g := &Guard{
		authorizer: authorizer,
		registry:   registry,
		counter:    counter,
		store:      store,
		resolver:   resolver,
		audit:      audit,
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckReferences counts live references to the record across every
// registered relation. Unknown kinds yield an empty report.
func (g *Guard) CheckReferences(ctx context.Context, record Record) (ReferenceReport, error) {
	var report ReferenceReport
	for _, rel := range g.registry.RelationsFor(record.Kind()) {
		count, samples, err := g.counter.Count(ctx, rel.ReferencingKind, rel.ForeignKeyField, record.RecordID(), sampleLimit)
		if err != nil {
			return ReferenceReport{}, fmt.Errorf("%w: %s.%s: %w", ErrReferenceCheckFailed, rel.ReferencingKind, rel.ForeignKeyField, err)
		}
		if count == 0 {
			continue
		}
		report.HasReferences = true
		report.TotalReferences += count
		report.PerModel = append(report.PerModel, ModelReferences{
			ModelName: rel.ReferencingKind,
			FieldName: rel.ForeignKeyField,
			Count:     count,
			SampleIDs: samples,
		})
	}
	return report, nil
}

// CanDelete reports whether the principal may remove the record outright
// (canHard) or only disable it (canSoft), with a human-readable reason
// for denials. Unauthorized principals get no report at all.
func (g *Guard) CanDelete(ctx context.Context, p gate.Principal, record Record) (canHard, canSoft bool, reason string, report *ReferenceReport) {
	if d := g.authorizer.CanDelete(p); !d.Allowed {
		return false, false, "unauthorized", nil
	}
	rep, err := g.CheckReferences(ctx, record)
	if err != nil {
		g.log.ErrorContext(ctx, "reference check failed",
			slog.String("kind", record.Kind()),
			slog.String("record_id", record.RecordID()),
			slog.Any("error", err))
		return false, false, "reference check failed", nil
	}
	if !rep.HasReferences {
		return true, true, "", &rep
	}
	_, disableable := record.(Disableable)
	reason = fmt.Sprintf("%d records still reference this %s", rep.TotalReferences, record.Kind())
	return false, disableable, reason, &rep
}

// SafeDelete removes the record when nothing references it, or disables
// it when references exist and the record supports disabling. Every
// state change is audited; unauthorized calls never touch the record.
func (g *Guard) SafeDelete(ctx context.Context, p gate.Principal, record Record) (bool, string, Outcome, *ReferenceReport) {
	if d := g.authorizer.CanDelete(p); !d.Allowed {
		return false, "unauthorized", OutcomeNone, nil
	}
	report, err := g.CheckReferences(ctx, record)
	if err != nil {
		g.log.ErrorContext(ctx, "reference check failed",
			slog.String("kind", record.Kind()),
			slog.String("record_id", record.RecordID()),
			slog.Any("error", err))
		return false, "reference check failed", OutcomeNone, nil
	}
	if !report.HasReferences {
		return g.delete(ctx, p, record, &report)
	}
	return g.disable(ctx, p, record, &report)
}

func (g *Guard) delete(ctx context.Context, p gate.Principal, record Record, report *ReferenceReport) (bool, string, Outcome, *ReferenceReport) {
	sd, ok := record.(SoftDeletable)
	if !ok {
		return false, "this record type cannot be deleted", OutcomeNone, report
	}
	level := g.resolver.Resolve(ctx, p)
	sd.MarkDeleted(g.now().UTC(), p.UserID())
	if err := g.store.Update(ctx, record); err != nil {
		g.audit.Log(ctx, p.UserID(), auditlog.ActionDelete, record.Kind(), level,
			auditlog.WithObjectID(record.RecordID()),
			auditlog.WithFailure(err.Error()))
		return false, "failed to delete record", OutcomeNone, report
	}
	g.audit.Log(ctx, p.UserID(), auditlog.ActionDelete, record.Kind(), level,
		auditlog.WithObjectID(record.RecordID()))
	return true, "record deleted", OutcomeHardDelete, report
}

func (g *Guard) disable(ctx context.Context, p gate.Principal, record Record, report *ReferenceReport) (bool, string, Outcome, *ReferenceReport) {
	d, ok := record.(Disableable)
	if !ok {
		return false, "cannot disable this record type", OutcomeNone, report
	}
	level := g.resolver.Resolve(ctx, p)
	before := d.Enabled()
	d.SetEnabled(false)
	if err := g.store.Update(ctx, record); err != nil {
		g.audit.Log(ctx, p.UserID(), auditlog.ActionUpdate, record.Kind(), level,
			auditlog.WithObjectID(record.RecordID()),
			auditlog.WithFailure(err.Error()))
		return false, "failed to disable record", OutcomeNone, report
	}
	g.audit.Log(ctx, p.UserID(), auditlog.ActionUpdate, record.Kind(), level,
		auditlog.WithObjectID(record.RecordID()),
		auditlog.WithMetadata(map[string]any{
			"before": map[string]any{"enabled": before},
			"after":  map[string]any{"enabled": false},
		}))
	msg := fmt.Sprintf("record disabled, %d references retained", report.TotalReferences)
	return true, msg, OutcomeSoftDisable, report
}
