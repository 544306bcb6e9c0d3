package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/guardkit/pkg/pg"
)

// PostgresStorage persists entries in the access_log table and
// auto-creates rows in access_policies.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Storage backed by the given pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	if pool == nil {
		panic("auditlog: pool cannot be nil")
	}
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Store(ctx context.Context, entry Entry) error {
	var metadata []byte
	if len(entry.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return errors.Join(ErrStoreFailed, err)
		}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO access_log (
			id, user_name, action, data_type, object_id,
			level_used, level_priority, source_ip, user_agent,
			success, error_message, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID, entry.User, string(entry.Action), entry.DataType, nullable(entry.ObjectID),
		entry.LevelUsed, entry.LevelPriority, nullable(entry.SourceIP), nullable(entry.UserAgent),
		entry.Success, nullable(entry.ErrorMessage), metadata, entry.CreatedAt,
	)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *PostgresStorage) EnsurePolicy(ctx context.Context, levelName string, priority int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO access_policies (level_name, priority, authorized_groups, active)
		VALUES ($1, $2, '{}', TRUE)
		ON CONFLICT (level_name) DO NOTHING`,
		levelName, priority,
	)
	if err != nil && !pg.IsDuplicateKeyError(err) {
		return errors.Join(ErrPolicyEnsureFailed, err)
	}
	return nil
}

func (s *PostgresStorage) StatsSince(ctx context.Context, since time.Time) (int64, int64, int64, error) {
	var entries, dataTypes, users int64
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT data_type), COUNT(DISTINCT user_name)
		FROM access_log
		WHERE created_at >= $1`, since,
	).Scan(&entries, &dataTypes, &users)
	if err != nil {
		return 0, 0, 0, errors.Join(ErrStatsQueryFailed, err)
	}
	return entries, dataTypes, users, nil
}

// nullable maps empty strings to NULL so optional columns stay clean.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
