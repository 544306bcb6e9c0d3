package refguard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/auditlog"
	"github.com/dmitrymomot/guardkit/pkg/gate"
	"github.com/dmitrymomot/guardkit/pkg/refguard"
	"github.com/dmitrymomot/guardkit/pkg/seclevel"
)

type testPrincipal struct {
	id     string
	groups []string
	active bool
}

func (p testPrincipal) UserID() string   { return p.id }
func (p testPrincipal) Groups() []string { return p.groups }
func (p testPrincipal) IsActive() bool   { return p.active }

type tenant struct {
	id        string
	enabled   bool
	deletedAt *time.Time
	deletedBy string
}

func (t *tenant) Kind() string     { return "tenants" }
func (t *tenant) RecordID() string { return t.id }
func (t *tenant) Enabled() bool    { return t.enabled }
func (t *tenant) SetEnabled(v bool) { t.enabled = v }

func (t *tenant) MarkDeleted(at time.Time, by string) {
	t.deletedAt = &at
	t.deletedBy = by
}

// archive supports neither soft deletion nor disabling.
type archive struct{ id string }

func (a *archive) Kind() string     { return "archives" }
func (a *archive) RecordID() string { return a.id }

type refCount struct {
	count int64
	ids   []string
}

type memCounter struct {
	refs   map[string]refCount
	err    error
	limits []int
}

func (c *memCounter) Count(_ context.Context, kind, field, targetID string, limit int) (int64, []string, error) {
	if c.err != nil {
		return 0, nil, c.err
	}
	c.limits = append(c.limits, limit)
	rc := c.refs[kind+"."+field+"."+targetID]
	ids := rc.ids
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return rc.count, ids, nil
}

type memStore struct {
	updates []refguard.Record
	err     error
}

func (s *memStore) Update(_ context.Context, record refguard.Record) error {
	if s.err != nil {
		return s.err
	}
	s.updates = append(s.updates, record)
	return nil
}

type recordedEntry struct {
	user     string
	action   auditlog.Action
	dataType string
	entry    auditlog.Entry
}

type fakeRecorder struct {
	entries []recordedEntry
}

func (r *fakeRecorder) Log(_ context.Context, user string, action auditlog.Action, dataType string, _ seclevel.Level, opts ...auditlog.EntryOption) {
	entry := auditlog.Entry{Success: true}
	for _, opt := range opts {
		opt(&entry)
	}
	r.entries = append(r.entries, recordedEntry{user: user, action: action, dataType: dataType, entry: entry})
}

type staticResolver struct{ level seclevel.Level }

func (r staticResolver) Resolve(_ context.Context, _ seclevel.User) seclevel.Level {
	return r.level
}

var (
	admin = testPrincipal{id: "alice", groups: []string{"administrators"}, active: true}
	staff = testPrincipal{id: "bob", groups: []string{"staff"}, active: true}

	frozen = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
)

func tenantRegistry() *refguard.Registry {
	return refguard.NewRegistry().
		Register("tenants",
			refguard.Relation{ReferencingKind: "leases", ForeignKeyField: "tenant_id"},
			refguard.Relation{ReferencingKind: "payments", ForeignKeyField: "tenant_id"},
		)
}

func newGuard(counter refguard.Counter, store refguard.Store, rec refguard.Recorder) *refguard.Guard {
	return refguard.New(
		gate.New("administrators"),
		tenantRegistry(),
		counter,
		store,
		staticResolver{level: seclevel.Level{Name: "confidential", Priority: 9}},
		rec,
		refguard.WithClock(func() time.Time { return frozen }),
	)
}

func TestGuardUnauthorized(t *testing.T) {
	t.Parallel()

	counter := &memCounter{refs: map[string]refCount{}}
	store := &memStore{}
	rec := &fakeRecorder{}
	guard := newGuard(counter, store, rec)
	record := &tenant{id: "t1", enabled: true}

	canHard, canSoft, reason, report := guard.CanDelete(context.Background(), staff, record)
	assert.False(t, canHard)
	assert.False(t, canSoft)
	assert.Equal(t, "unauthorized", reason)
	assert.Nil(t, report)

	ok, msg, outcome, report := guard.SafeDelete(context.Background(), staff, record)
	assert.False(t, ok)
	assert.Equal(t, "unauthorized", msg)
	assert.Equal(t, refguard.OutcomeNone, outcome)
	assert.Nil(t, report)

	// The record must be left completely untouched.
	assert.True(t, record.enabled)
	assert.Nil(t, record.deletedAt)
	assert.Empty(t, store.updates)
	assert.Empty(t, rec.entries)
	assert.Empty(t, counter.limits, "unauthorized calls must not even count references")
}

func TestGuardDeleteWithoutReferences(t *testing.T) {
	t.Parallel()

	counter := &memCounter{refs: map[string]refCount{}}
	store := &memStore{}
	rec := &fakeRecorder{}
	guard := newGuard(counter, store, rec)
	record := &tenant{id: "t1", enabled: true}

	canHard, canSoft, reason, report := guard.CanDelete(context.Background(), admin, record)
	assert.True(t, canHard)
	assert.True(t, canSoft)
	assert.Empty(t, reason)
	require.NotNil(t, report)
	assert.False(t, report.HasReferences)

	ok, msg, outcome, _ := guard.SafeDelete(context.Background(), admin, record)
	assert.True(t, ok)
	assert.Equal(t, "record deleted", msg)
	assert.Equal(t, refguard.OutcomeHardDelete, outcome)

	require.NotNil(t, record.deletedAt)
	assert.Equal(t, frozen, *record.deletedAt)
	assert.Equal(t, "alice", record.deletedBy)
	require.Len(t, store.updates, 1)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, auditlog.ActionDelete, rec.entries[0].action)
	assert.Equal(t, "tenants", rec.entries[0].dataType)
	assert.Equal(t, "t1", rec.entries[0].entry.ObjectID)
	assert.True(t, rec.entries[0].entry.Success)
}

func TestGuardDisableWhenReferenced(t *testing.T) {
	t.Parallel()

	counter := &memCounter{refs: map[string]refCount{
		"leases.tenant_id.t1":   {count: 4, ids: []string{"l1", "l2", "l3", "l4"}},
		"payments.tenant_id.t1": {count: 2, ids: []string{"p1", "p2"}},
	}}
	store := &memStore{}
	rec := &fakeRecorder{}
	guard := newGuard(counter, store, rec)
	record := &tenant{id: "t1", enabled: true}

	canHard, canSoft, reason, report := guard.CanDelete(context.Background(), admin, record)
	assert.False(t, canHard)
	assert.True(t, canSoft)
	assert.Equal(t, "6 records still reference this tenants", reason)
	require.NotNil(t, report)
	assert.True(t, report.HasReferences)
	assert.Equal(t, int64(6), report.TotalReferences)
	require.Len(t, report.PerModel, 2)
	assert.Equal(t, "leases", report.PerModel[0].ModelName)
	assert.Equal(t, "tenant_id", report.PerModel[0].FieldName)
	assert.Equal(t, int64(4), report.PerModel[0].Count)
	assert.Len(t, report.PerModel[0].SampleIDs, 3, "samples are capped")

	ok, msg, outcome, _ := guard.SafeDelete(context.Background(), admin, record)
	assert.True(t, ok)
	assert.Equal(t, "record disabled, 6 references retained", msg)
	assert.Equal(t, refguard.OutcomeSoftDisable, outcome)

	// Disabled, not deleted.
	assert.False(t, record.enabled)
	assert.Nil(t, record.deletedAt)
	require.Len(t, store.updates, 1)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, auditlog.ActionUpdate, rec.entries[0].action)
	require.NotNil(t, rec.entries[0].entry.Metadata)
	assert.Equal(t, map[string]any{"enabled": true}, rec.entries[0].entry.Metadata["before"])
	assert.Equal(t, map[string]any{"enabled": false}, rec.entries[0].entry.Metadata["after"])
}

func TestGuardReferencedWithoutDisableSupport(t *testing.T) {
	t.Parallel()

	counter := &memCounter{refs: map[string]refCount{
		"exports.archive_id.a1": {count: 1, ids: []string{"e1"}},
	}}
	store := &memStore{}
	rec := &fakeRecorder{}
	guard := refguard.New(
		gate.New("administrators"),
		refguard.NewRegistry().Register("archives",
			refguard.Relation{ReferencingKind: "exports", ForeignKeyField: "archive_id"},
		),
		counter,
		store,
		staticResolver{level: seclevel.Level{Name: "confidential", Priority: 9}},
		rec,
	)
	record := &archive{id: "a1"}

	canHard, canSoft, _, _ := guard.CanDelete(context.Background(), admin, record)
	assert.False(t, canHard)
	assert.False(t, canSoft)

	ok, msg, outcome, report := guard.SafeDelete(context.Background(), admin, record)
	assert.False(t, ok)
	assert.Equal(t, "cannot disable this record type", msg)
	assert.Equal(t, refguard.OutcomeNone, outcome)
	require.NotNil(t, report)
	assert.Empty(t, store.updates)
	assert.Empty(t, rec.entries)
}

func TestGuardUnknownKindIsFreelyDeletable(t *testing.T) {
	t.Parallel()

	counter := &memCounter{refs: map[string]refCount{}}
	store := &memStore{}
	rec := &fakeRecorder{}
	guard := newGuard(counter, store, rec)
	record := &tenant{id: "t9", enabled: true}

	report, err := guard.CheckReferences(context.Background(), record)
	require.NoError(t, err)
	assert.False(t, report.HasReferences)
	assert.Zero(t, report.TotalReferences)
	assert.Empty(t, report.PerModel)
}

func TestGuardCounterFailure(t *testing.T) {
	t.Parallel()

	counter := &memCounter{err: errors.New("connection refused")}
	store := &memStore{}
	rec := &fakeRecorder{}
	guard := newGuard(counter, store, rec)
	record := &tenant{id: "t1", enabled: true}

	canHard, canSoft, reason, report := guard.CanDelete(context.Background(), admin, record)
	assert.False(t, canHard)
	assert.False(t, canSoft)
	assert.Equal(t, "reference check failed", reason)
	assert.Nil(t, report)

	ok, _, outcome, _ := guard.SafeDelete(context.Background(), admin, record)
	assert.False(t, ok)
	assert.Equal(t, refguard.OutcomeNone, outcome)
	assert.True(t, record.enabled)
	assert.Nil(t, record.deletedAt)
	assert.Empty(t, store.updates)

	_, err := guard.CheckReferences(context.Background(), record)
	require.ErrorIs(t, err, refguard.ErrReferenceCheckFailed)
}

func TestGuardStoreFailureIsAudited(t *testing.T) {
	t.Parallel()

	counter := &memCounter{refs: map[string]refCount{}}
	store := &memStore{err: errors.New("disk full")}
	rec := &fakeRecorder{}
	guard := newGuard(counter, store, rec)
	record := &tenant{id: "t1", enabled: true}

	ok, msg, outcome, _ := guard.SafeDelete(context.Background(), admin, record)
	assert.False(t, ok)
	assert.Equal(t, "failed to delete record", msg)
	assert.Equal(t, refguard.OutcomeNone, outcome)

	require.Len(t, rec.entries, 1)
	assert.False(t, rec.entries[0].entry.Success)
	assert.Equal(t, "disk full", rec.entries[0].entry.ErrorMessage)
}

func TestRegistryPanicsOnEmptyKind(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		refguard.NewRegistry().Register("")
	})
	assert.Panics(t, func() {
		refguard.NewRegistry().Register("tenants", refguard.Relation{})
	})
}
