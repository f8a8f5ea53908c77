package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ledger_blocks (
		idx           BIGINT PRIMARY KEY,
		hash          TEXT NOT NULL UNIQUE,
		previous_hash TEXT NOT NULL,
		block_time    BIGINT NOT NULL,
		body          JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_pending (
		seq   INTEGER PRIMARY KEY,
		tx_id TEXT NOT NULL,
		body  JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS security_events (
		id         UUID PRIMARY KEY,
		type       TEXT NOT NULL,
		details    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS security_events_type_idx ON security_events (type, created_at)`,
}

// Migrate creates the ledger and security event tables if they do not exist.
func Migrate(ctx context.Context, pool Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
