package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// one statement per entry: pgx's extended protocol rejects
// multi-statement strings
var schema = []string{
	`CREATE TABLE IF NOT EXISTS staff (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'pflegekraft',
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		birth_date DATE,
		address    TEXT NOT NULL DEFAULT '',
		care_level INT CHECK (care_level BETWEEN 1 AND 5),
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS care_entries (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL REFERENCES clients(id),
		category    TEXT NOT NULL,
		description TEXT NOT NULL,
		recorded_by TEXT NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_care_entries_client_recorded
		ON care_entries (client_id, recorded_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_care_entries_recorded
		ON care_entries (recorded_at DESC)`,
}

// Migrate applies the schema; every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
