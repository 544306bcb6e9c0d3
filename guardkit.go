package guardkit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/guardkit/pkg/auditlog"
	"github.com/dmitrymomot/guardkit/pkg/gate"
	"github.com/dmitrymomot/guardkit/pkg/redact"
	"github.com/dmitrymomot/guardkit/pkg/refguard"
	"github.com/dmitrymomot/guardkit/pkg/seclevel"
)

// Service wires the guardkit components together: level resolution,
// redaction, audit logging, permission gating and guarded deletion.
// The fields are exported so callers can reach individual components
// directly when the flow helpers below are not enough.
type Service struct {
	Resolver *seclevel.Resolver
	Engine   *redact.Engine
	Audit    *auditlog.Logger
	Gate     *gate.Gate

	// Deletion is nil unless WithDeletion was provided.
	Deletion *refguard.Guard

	health []func(context.Context) error
}

type options struct {
	log        *slog.Logger
	cache      seclevel.Cache
	engineOpts []redact.Option
	gateOpts   []gate.Option
	auditOpts  []auditlog.Option

	registry *refguard.Registry
	counter  refguard.Counter
	store    refguard.Store

	health []func(context.Context) error
}

// Option configures the Service constructor.
type Option func(*options)

// WithLogger sets the logger shared by all components.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithLevelCache overrides the resolver's level cache, for example with
// the Redis-backed one.
func WithLevelCache(c seclevel.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithEngineOptions passes options through to the redaction engine.
func WithEngineOptions(opts ...redact.Option) Option {
	return func(o *options) { o.engineOpts = append(o.engineOpts, opts...) }
}

// WithGateOptions passes options through to the permission gate.
func WithGateOptions(opts ...gate.Option) Option {
	return func(o *options) { o.gateOpts = append(o.gateOpts, opts...) }
}

// WithAuditOptions passes options through to the audit logger.
func WithAuditOptions(opts ...auditlog.Option) Option {
	return func(o *options) { o.auditOpts = append(o.auditOpts, opts...) }
}

// WithHealthchecks registers probes reported by Service.Healthcheck.
// NewFromEnv adds the Postgres and Redis probes automatically.
func WithHealthchecks(checks ...func(context.Context) error) Option {
	return func(o *options) { o.health = append(o.health, checks...) }
}

// WithDeletion enables the deletion guard. All three collaborators are
// required; the guard constructor panics on nil.
func WithDeletion(registry *refguard.Registry, counter refguard.Counter, store refguard.Store) Option {
	return func(o *options) {
		o.registry = registry
		o.counter = counter
		o.store = store
	}
}

// New assembles a Service from a policy source, an audit storage and the
// name of the top-tier group. It panics on nil collaborators, matching
// the component constructors.
func New(source seclevel.Source, storage auditlog.Storage, topGroup string, opts ...Option) *Service {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	resolverOpts := []seclevel.Option{}
	if o.log != nil {
		resolverOpts = append(resolverOpts, seclevel.WithLogger(o.log))
	}
	if o.cache != nil {
		resolverOpts = append(resolverOpts, seclevel.WithCache(o.cache))
	}
	resolver := seclevel.NewResolver(source, resolverOpts...)

	auditOpts := o.auditOpts
	if o.log != nil {
		auditOpts = append(auditOpts, auditlog.WithLogger(o.log))
	}
	audit := auditlog.New(storage, resolver, auditOpts...)

	s := &Service{
		Resolver: resolver,
		Engine:   redact.NewEngine(audit, o.engineOpts...),
		Audit:    audit,
		Gate:     gate.New(topGroup, o.gateOpts...),
		health:   o.health,
	}

	if o.registry != nil || o.counter != nil || o.store != nil {
		guardOpts := []refguard.Option{}
		if o.log != nil {
			guardOpts = append(guardOpts, refguard.WithLogger(o.log))
		}
		s.Deletion = refguard.New(s.Gate, o.registry, o.counter, o.store, resolver, audit, guardOpts...)
	}

	return s
}

// Level resolves the principal's effective security level.
func (s *Service) Level(ctx context.Context, p Principal) seclevel.Level {
	return s.Resolver.Resolve(ctx, p)
}

// View gates read access and returns the dataset redacted for the
// principal's level. Denials return a nil dataset and the gate decision;
// allowed calls write one view entry to the audit log.
func (s *Service) View(ctx context.Context, p Principal, dataType string, ds redact.Dataset, opts ...auditlog.EntryOption) (redact.Dataset, gate.Decision) {
	d := s.Gate.CanView(p)
	if !d.Allowed {
		return nil, d
	}
	level := s.Resolver.Resolve(ctx, p)
	return s.Engine.Filter(ctx, p.UserID(), level, dataType, ds, opts...), d
}

// Export reports whether the principal may export the data type. The
// attempt is always audited, allowed or not.
func (s *Service) Export(ctx context.Context, p Principal, dataType string, opts ...auditlog.EntryOption) bool {
	return s.Audit.ExportCheck(ctx, p, dataType, opts...)
}

// Stats returns audit statistics for principals whose tier permits it.
func (s *Service) Stats(ctx context.Context, p Principal) auditlog.Stats {
	return s.Audit.Stats(ctx, p)
}

// Healthcheck runs every registered probe and joins their failures.
// Services without probes always report healthy.
func (s *Service) Healthcheck(ctx context.Context) error {
	var errs []error
	for _, check := range s.health {
		if err := check(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Delete runs the guarded deletion flow. It panics when the Service was
// built without WithDeletion.
func (s *Service) Delete(ctx context.Context, p Principal, record refguard.Record) (bool, string, refguard.Outcome, *refguard.ReferenceReport) {
	if s.Deletion == nil {
		panic("guardkit: deletion guard not configured, use WithDeletion")
	}
	return s.Deletion.SafeDelete(ctx, p, record)
}
