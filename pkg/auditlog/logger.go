package auditlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/guardkit/pkg/seclevel"
)

const (
	// exportMinPriority is the floor a tier needs for export eligibility.
	exportMinPriority = 5

	// statsMinPriority is the floor for reading audit statistics.
	statsMinPriority = 8

	// statsWindow bounds the statistics aggregation period.
	statsWindow = 30 * 24 * time.Hour
)

// LevelResolver is the tier collaborator the logger needs for export
// checks and statistics gating.
type LevelResolver interface {
	Resolve(ctx context.Context, user seclevel.User) seclevel.Level
}

// ErrorObserver receives errors the logger swallowed. Audit problems never
// abort the caller's operation; the observer is the diagnostic channel
// that makes them visible to tests and monitoring.
type ErrorObserver func(ctx context.Context, err error)

// Logger records every protected access and export attempt. All writes
// are best-effort.
type Logger struct {
	storage  Storage
	resolver LevelResolver
	observer ErrorObserver
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithErrorObserver routes swallowed write failures to fn.
func WithErrorObserver(fn ErrorObserver) Option {
	return func(l *Logger) {
		if fn != nil {
			l.observer = fn
		}
	}
}

// WithLogger sets the diagnostic slog logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Logger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithClock overrides entry timestamping. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates an audit logger. Both storage and resolver are required.
func New(storage Storage, resolver LevelResolver, opts ...Option) *Logger {
	if storage == nil {
		panic("auditlog: storage cannot be nil")
	}
	if resolver == nil {
		panic("auditlog: resolver cannot be nil")
	}

	l := &Logger{
		storage:  storage,
		resolver: resolver,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log writes one entry for a protected access. The write is best-effort:
// the referenced policy row is auto-created when missing, and any failure
// is reported to the observer and swallowed so the caller's operation
// proceeds regardless.
func (l *Logger) Log(ctx context.Context, user string, action Action, dataType string, level seclevel.Level, opts ...EntryOption) {
	entry := Entry{
		ID:            uuid.New().String(),
		User:          user,
		Action:        action,
		DataType:      dataType,
		LevelUsed:     level.Name,
		LevelPriority: level.Priority,
		Success:       true,
		CreatedAt:     l.now(),
	}
	for _, opt := range opts {
		opt(&entry)
	}

	if err := l.storage.EnsurePolicy(ctx, level.Name, level.Priority); err != nil {
		l.report(ctx, err)
		return
	}
	if err := l.storage.Store(ctx, entry); err != nil {
		l.report(ctx, err)
	}
}

// ExportCheck decides export eligibility for the user and always writes
// exactly one export entry, whatever the outcome.
func (l *Logger) ExportCheck(ctx context.Context, user seclevel.User, dataType string, opts ...EntryOption) bool {
	level := l.resolver.Resolve(ctx, user)
	allowed := level.CanExport && level.Priority >= exportMinPriority

	// Copy before appending: appending to the variadic slice in place
	// could write into spare capacity of a backing array the caller
	// still holds.
	logOpts := make([]EntryOption, 0, len(opts)+1)
	logOpts = append(logOpts, opts...)
	if !allowed {
		logOpts = append(logOpts, WithFailure("export not permitted for this level"))
	}
	l.Log(ctx, user.UserID(), ActionExport, dataType, level, logOpts...)

	return allowed
}

// Stats returns audit statistics over the last 30 days, or an
// access-denied result for tiers below the statistics floor.
func (l *Logger) Stats(ctx context.Context, user seclevel.User) Stats {
	level := l.resolver.Resolve(ctx, user)
	if level.Priority < statsMinPriority {
		return Stats{AccessDenied: true}
	}

	since := l.now().Add(-statsWindow)
	entries, dataTypes, users, err := l.storage.StatsSince(ctx, since)
	if err != nil {
		l.report(ctx, err)
		return Stats{Since: since}
	}

	return Stats{
		TotalEntries:      entries,
		DistinctDataTypes: dataTypes,
		ActiveUsers:       users,
		Since:             since,
	}
}

func (l *Logger) report(ctx context.Context, err error) {
	l.log.ErrorContext(ctx, "audit write failed", "error", err)
	if l.observer != nil {
		l.observer(ctx, err)
	}
}
