package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/midcare/pflegedoc/internal/domain/client"
	"github.com/midcare/pflegedoc/internal/domain/entry"
)

type EntriesRepo struct {
	pool *pgxpool.Pool
}

func NewEntriesRepo(pool *pgxpool.Pool) *EntriesRepo {
	return &EntriesRepo{pool: pool}
}

// Create inserts an entry for an existing client. The owning client
// is checked inside the same transaction as the insert, so an entry
// can never be committed for a client that is gone.
func (r *EntriesRepo) Create(ctx context.Context, clientID string, req entry.CreateEntryRequest) (entry.CareEntry, error) {
	e := entry.NewFromCreateRequest(clientID, req)

	tx, err := r.pool.Begin(ctx)

	if err != nil {
		return entry.CareEntry{}, err
	}

	defer tx.Rollback(ctx)

	var dummy string

	err = tx.QueryRow(ctx, `SELECT id FROM clients WHERE id = $1`, clientID).Scan(&dummy)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entry.CareEntry{}, client.ErrNotFound
		}

		return entry.CareEntry{}, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO care_entries(id, client_id, category, description, recorded_by, recorded_at, created_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.ClientID, e.Category, e.Description, e.RecordedBy, e.RecordedAt, e.CreatedAt)

	if err != nil {
		return entry.CareEntry{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return entry.CareEntry{}, err
	}

	return e, nil
}

func (r *EntriesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM care_entries WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entry.ErrNotFound
	}

	return nil
}

// ListForClient returns one client's entries, newest first. A limit
// of 0 means unbounded (the export path).
func (r *EntriesRepo) ListForClient(ctx context.Context, clientID string, limit int) ([]entry.CareEntry, error) {
	query := `SELECT id, client_id, category, description, recorded_by, recorded_at, created_at
		FROM care_entries
		WHERE client_id = $1
		ORDER BY recorded_at DESC, id ASC`

	args := []interface{}{clientID}

	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	return r.scanEntries(ctx, query, args...)
}

// Recent returns the newest entries across all clients.
func (r *EntriesRepo) Recent(ctx context.Context, limit int) ([]entry.CareEntry, error) {
	return r.scanEntries(ctx,
		`SELECT id, client_id, category, description, recorded_by, recorded_at, created_at
		 FROM care_entries
		 ORDER BY recorded_at DESC, id ASC
		 LIMIT $1`, limit)
}

func (r *EntriesRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM care_entries WHERE recorded_at >= $1`, since).Scan(&n)

	if err != nil {
		return 0, err
	}

	return n, nil
}

func (r *EntriesRepo) scanEntries(ctx context.Context, query string, args ...interface{}) ([]entry.CareEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]entry.CareEntry, 0)

	for rows.Next() {
		var e entry.CareEntry

		err = rows.Scan(&e.ID, &e.ClientID, &e.Category, &e.Description, &e.RecordedBy, &e.RecordedAt, &e.CreatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
