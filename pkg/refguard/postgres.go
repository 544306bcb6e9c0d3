package refguard

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCounter counts referencing rows directly in Postgres. Kinds map
// to table names and fields to column names; both come from the static
// Registry wiring, never from user input, and are quoted as identifiers
// before interpolation.
type PostgresCounter struct {
	pool *pgxpool.Pool
}

// NewPostgresCounter creates a Counter backed by the given pool.
func NewPostgresCounter(pool *pgxpool.Pool) *PostgresCounter {
	if pool == nil {
		panic("refguard: pool cannot be nil")
	}
	return &PostgresCounter{pool: pool}
}

func (c *PostgresCounter) Count(ctx context.Context, kind, field, targetID string, limit int) (int64, []string, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) OVER (), id::text FROM %s WHERE %s = $1 LIMIT $2`,
		pgx.Identifier{kind}.Sanitize(),
		pgx.Identifier{field}.Sanitize(),
	)
	rows, err := c.pool.Query(ctx, query, targetID, limit)
	if err != nil {
		return 0, nil, errors.Join(ErrReferenceCheckFailed, err)
	}
	defer rows.Close()

	var total int64
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&total, &id); err != nil {
			return 0, nil, errors.Join(ErrReferenceCheckFailed, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, errors.Join(ErrReferenceCheckFailed, err)
	}
	return total, ids, nil
}
