package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/midcare/pflegedoc/internal/domain/client"
)

type ClientsRepo struct {
	pool *pgxpool.Pool
}

func NewClientsRepo(pool *pgxpool.Pool) *ClientsRepo {
	return &ClientsRepo{pool: pool}
}

func (r *ClientsRepo) Create(ctx context.Context, req client.CreateClientRequest) (client.Client, error) {
	c, err := client.NewFromCreateRequest(req)

	if err != nil {
		return client.Client{}, err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO clients(id, name, birth_date, address, care_level, notes, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.Name, c.BirthDate, c.Address, c.CareLevel, c.Notes, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		return client.Client{}, err
	}

	return c, nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id string) (client.Client, error) {
	var c client.Client

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, birth_date, address, care_level, notes, created_at, updated_at
		 FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.BirthDate, &c.Address, &c.CareLevel, &c.Notes, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNotFound
		}

		return client.Client{}, err
	}

	return c, nil
}

// List returns all clients, or the ones whose name contains search
// case-insensitively. Always ordered by name ascending.
func (r *ClientsRepo) List(ctx context.Context, search string) ([]client.Client, error) {
	query := `SELECT id, name, birth_date, address, care_level, notes, created_at, updated_at
		FROM clients`

	var args []interface{}

	if search != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'`
		args = append(args, escapeLike(search))
	}

	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]client.Client, 0)

	for rows.Next() {
		var c client.Client

		err = rows.Scan(&c.ID, &c.Name, &c.BirthDate, &c.Address, &c.CareLevel, &c.Notes, &c.CreatedAt, &c.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ClientsRepo) Count(ctx context.Context) (int, error) {
	var n int

	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)

	if err != nil {
		return 0, err
	}

	return n, nil
}

func (r *ClientsRepo) Update(ctx context.Context, id string, req client.UpdateClientRequest) (client.Client, error) {
	birthDate, err := client.ParseBirthDate(req.BirthDate)

	if err != nil {
		return client.Client{}, err
	}

	careLevel, err := client.ParseCareLevel(req.CareLevel)

	if err != nil {
		return client.Client{}, err
	}

	var c client.Client

	err = r.pool.QueryRow(ctx,
		`UPDATE clients
			SET name = $2,
				birth_date = $3,
				address = $4,
				care_level = $5,
				notes = $6,
				updated_at = $7
		 WHERE id = $1
		 RETURNING id, name, birth_date, address, care_level, notes, created_at, updated_at`,
		id, req.Name, birthDate, req.Address, careLevel, req.Notes, time.Now().UTC(),
	).Scan(&c.ID, &c.Name, &c.BirthDate, &c.Address, &c.CareLevel, &c.Notes, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNotFound
		}

		return client.Client{}, err
	}

	return c, nil
}

// Delete removes the client and every entry it owns in one
// transaction, so a failure leaves no partial cascade behind.
func (r *ClientsRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)

	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM care_entries WHERE client_id = $1`, id)

	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return client.ErrNotFound
	}

	return tx.Commit(ctx)
}

// escapeLike neutralizes LIKE metacharacters so a search term matches
// as a plain substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return r.Replace(s)
}
