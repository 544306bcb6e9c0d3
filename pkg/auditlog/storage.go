package auditlog

import (
	"context"
	"sync"
	"time"
)

// Storage persists audit entries and the policy rows they reference.
type Storage interface {
	// Store appends one entry.
	Store(ctx context.Context, entry Entry) error

	// EnsurePolicy creates the access policy row (levelName, priority)
	// if it does not exist, so stored entries always reference a valid
	// policy. Existing rows are left untouched.
	EnsurePolicy(ctx context.Context, levelName string, priority int) error

	// StatsSince aggregates entries created at or after since: total
	// count, distinct data types, distinct users.
	StatsSince(ctx context.Context, since time.Time) (entries, dataTypes, users int64, err error)
}

// MemoryStorage keeps entries in memory. Used in tests and as a harmless
// default when no persistent backend is configured.
type MemoryStorage struct {
	mu       sync.Mutex
	entries  []Entry
	policies map[string]int
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{policies: make(map[string]int)}
}

func (s *MemoryStorage) Store(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStorage) EnsurePolicy(_ context.Context, levelName string, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[levelName]; !ok {
		s.policies[levelName] = priority
	}
	return nil
}

func (s *MemoryStorage) StatsSince(_ context.Context, since time.Time) (int64, int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	dataTypes := make(map[string]struct{})
	users := make(map[string]struct{})
	for _, e := range s.entries {
		if e.CreatedAt.Before(since) {
			continue
		}
		total++
		dataTypes[e.DataType] = struct{}{}
		users[e.User] = struct{}{}
	}
	return total, int64(len(dataTypes)), int64(len(users)), nil
}

// Entries returns a copy of everything stored so far.
func (s *MemoryStorage) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Policies returns the auto-created policy rows keyed by level name.
func (s *MemoryStorage) Policies() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.policies))
	for k, v := range s.policies {
		out[k] = v
	}
	return out
}
