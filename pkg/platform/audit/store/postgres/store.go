package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // postgres driver for the audit trail connection

	"votegate/pkg/platform/audit"
)

// Schema creates the append-only activity log table.
const Schema = `
CREATE TABLE IF NOT EXISTS activity_log (
	id         BIGSERIAL PRIMARY KEY,
	action     TEXT NOT NULL,
	voter_id   TEXT,
	occurred_at TIMESTAMPTZ NOT NULL,
	payload    JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS activity_log_voter_idx ON activity_log (voter_id);
`

// Store persists audit events in PostgreSQL. The activity log is retained
// for operator forensics; it is never read on any authentication path.
type Store struct {
	db *sql.DB
}

// New constructs a PostgreSQL-backed audit sink.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects via the lib/pq driver and applies the schema.
func Open(ctx context.Context, url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping audit db: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate activity log: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO activity_log (action, voter_id, occurred_at, payload) VALUES ($1, $2, $3, $4)`,
		string(event.Action), event.VoterID, event.Timestamp, payload,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
