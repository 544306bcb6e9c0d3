package seclevel

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads policy and grant configuration from the
// access_policies and permission_grants tables.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a Source backed by the given pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	if pool == nil {
		panic("seclevel: pool cannot be nil")
	}
	return &PostgresSource{pool: pool}
}

func (s *PostgresSource) Policies(ctx context.Context, groups []string) ([]PolicyRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT level_name, priority, authorized_groups, active
		FROM access_policies
		WHERE active AND authorized_groups && $1`, groups)
	if err != nil {
		return nil, errors.Join(ErrSourceQueryFailed, err)
	}
	defer rows.Close()

	var out []PolicyRecord
	for rows.Next() {
		var p PolicyRecord
		if err := rows.Scan(&p.LevelName, &p.Priority, &p.AuthorizedGroups, &p.Active); err != nil {
			return nil, errors.Join(ErrSourceQueryFailed, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrSourceQueryFailed, err)
	}
	return out, nil
}

func (s *PostgresSource) Grants(ctx context.Context, priority int) ([]Grant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, min_priority, view_amounts, view_personal_details, export, active
		FROM permission_grants
		WHERE active AND min_priority <= $1`, priority)
	if err != nil {
		return nil, errors.Join(ErrSourceQueryFailed, err)
	}
	defer rows.Close()

	var out []Grant
	for rows.Next() {
		var g Grant
		if err := rows.Scan(&g.Name, &g.MinPriority, &g.ViewAmounts, &g.ViewPersonalDetails, &g.Export, &g.Active); err != nil {
			return nil, errors.Join(ErrSourceQueryFailed, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrSourceQueryFailed, err)
	}
	return out, nil
}
