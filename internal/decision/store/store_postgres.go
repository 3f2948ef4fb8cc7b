package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"otsus/internal/decision"
)

// PostgresStore persists decision records through a pgx pool. Schema:
//
//	CREATE TABLE IF NOT EXISTS decision_records (
//	    id               UUID PRIMARY KEY,
//	    code_hash        TEXT NOT NULL,
//	    requested_amount INTEGER NOT NULL,
//	    requested_period INTEGER NOT NULL,
//	    approved_amount  INTEGER NOT NULL,
//	    approved_period  INTEGER NOT NULL,
//	    status           TEXT NOT NULL,
//	    reason           TEXT NOT NULL DEFAULT '',
//	    created_at       TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX IF NOT EXISTS decision_records_code_hash_idx ON decision_records (code_hash, created_at);
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Save(ctx context.Context, record decision.Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO decision_records (id, code_hash, requested_amount, requested_period, approved_amount, approved_period, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.CodeHash, record.RequestedAmount, record.RequestedPeriod,
		record.ApprovedAmount, record.ApprovedPeriod, record.Status, record.Reason, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save decision record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCodeHash(ctx context.Context, codeHash string) ([]decision.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, code_hash, requested_amount, requested_period, approved_amount, approved_period, status, reason, created_at
		FROM decision_records
		WHERE code_hash = $1
		ORDER BY created_at`,
		codeHash,
	)
	if err != nil {
		return nil, fmt.Errorf("list decision records: %w", err)
	}
	defer rows.Close()

	var out []decision.Record
	for rows.Next() {
		var r decision.Record
		if err := rows.Scan(&r.ID, &r.CodeHash, &r.RequestedAmount, &r.RequestedPeriod,
			&r.ApprovedAmount, &r.ApprovedPeriod, &r.Status, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan decision record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
