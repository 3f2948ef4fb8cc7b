package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PostgresStore persists audit events through database/sql. The schema is a
// flat append-only table:
//
//	CREATE TABLE IF NOT EXISTS audit_events (
//	    id          UUID PRIMARY KEY,
//	    ts          TIMESTAMPTZ NOT NULL,
//	    code_hash   TEXT NOT NULL,
//	    action      TEXT NOT NULL,
//	    decision    TEXT NOT NULL,
//	    reason      TEXT NOT NULL DEFAULT '',
//	    amount      INTEGER NOT NULL DEFAULT 0,
//	    period      INTEGER NOT NULL DEFAULT 0,
//	    request_id  TEXT NOT NULL DEFAULT '',
//	    client_ip   TEXT NOT NULL DEFAULT '',
//	    browser     TEXT NOT NULL DEFAULT '',
//	    os          TEXT NOT NULL DEFAULT ''
//	);
//	CREATE INDEX IF NOT EXISTS audit_events_code_hash_idx ON audit_events (code_hash, ts);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, ts, code_hash, action, decision, reason, amount, period, request_id, client_ip, browser, os)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		uuid.New(), event.Timestamp, event.CodeHash, event.Action, event.Decision,
		event.Reason, event.Amount, event.Period, event.RequestID, event.ClientIP,
		event.Browser, event.OS,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCodeHash(ctx context.Context, codeHash string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, code_hash, action, decision, reason, amount, period, request_id, client_ip, browser, os
		FROM audit_events
		WHERE code_hash = $1
		ORDER BY ts`,
		codeHash,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Timestamp, &e.CodeHash, &e.Action, &e.Decision, &e.Reason,
			&e.Amount, &e.Period, &e.RequestID, &e.ClientIP, &e.Browser, &e.OS); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
