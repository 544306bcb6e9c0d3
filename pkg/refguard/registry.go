package refguard

// Relation declares that records of ReferencingKind point at the guarded
// kind through ForeignKeyField.
type Relation struct {
	ReferencingKind string
	ForeignKeyField string
}

// Registry maps record kinds to the relations that may reference them.
// It is assembled once at startup and read-only afterwards, so lookups
// need no locking. Kinds absent from the registry have no known
// referencers and are treated as freely deletable.
type Registry struct {
	relations map[string][]Relation
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{relations: make(map[string][]Relation)}
}

// Register adds relations for a kind and returns the registry for
// chaining. It panics on empty kind or relation fields since the
// registry is built from static wiring, not runtime input.
func (r *Registry) Register(kind string, relations ...Relation) *Registry {
	if kind == "" {
		panic("refguard: kind cannot be empty")
	}
	for _, rel := range relations {
		if rel.ReferencingKind == "" || rel.ForeignKeyField == "" {
			panic("refguard: relation kind and field cannot be empty")
		}
	}
	r.relations[kind] = append(r.relations[kind], relations...)
	return r
}

// RelationsFor returns the registered relations for a kind, or nil when
// the kind is unknown.
func (r *Registry) RelationsFor(kind string) []Relation {
	return r.relations[kind]
}
