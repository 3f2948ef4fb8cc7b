//go:build integration

package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otsus/pkg/testutil/containers"
)

const auditEventsSchema = `
CREATE TABLE IF NOT EXISTS audit_events (
    id          UUID PRIMARY KEY,
    ts          TIMESTAMPTZ NOT NULL,
    code_hash   TEXT NOT NULL,
    action      TEXT NOT NULL,
    decision    TEXT NOT NULL,
    reason      TEXT NOT NULL DEFAULT '',
    amount      INTEGER NOT NULL DEFAULT 0,
    period      INTEGER NOT NULL DEFAULT 0,
    request_id  TEXT NOT NULL DEFAULT '',
    client_ip   TEXT NOT NULL DEFAULT '',
    browser     TEXT NOT NULL DEFAULT '',
    os          TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS audit_events_code_hash_idx ON audit_events (code_hash, ts);`

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)

	db, err := sql.Open("postgres", pg.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, auditEventsSchema)
	require.NoError(t, err)

	s := NewPostgresStore(db)

	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(ctx, Event{
		Timestamp: ts,
		CodeHash:  "hash-audit",
		Action:    ActionDecisionEvaluated,
		Decision:  "approved",
		Amount:    3600,
		Period:    12,
		RequestID: "req-1",
		ClientIP:  "203.0.113.7",
		Browser:   "Chrome",
		OS:        "Windows",
	}))
	require.NoError(t, s.Append(ctx, Event{
		Timestamp: ts.Add(time.Minute),
		CodeHash:  "hash-audit",
		Action:    ActionDecisionEvaluated,
		Decision:  "rejected",
		Reason:    "no_valid_loan",
	}))

	events, err := s.ListByCodeHash(ctx, "hash-audit")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "approved", events[0].Decision)
	assert.Equal(t, 3600, events[0].Amount)
	assert.Equal(t, "Chrome", events[0].Browser)
	assert.Equal(t, "no_valid_loan", events[1].Reason)
	assert.True(t, events[0].Timestamp.Equal(ts))

	empty, err := s.ListByCodeHash(ctx, "hash-missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
