package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/midcare/pflegedoc/internal/domain/staff"
)

var (
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrEmailAlreadyUsed = errors.New("email already in use")
)

type StaffRepo struct {
	pool *pgxpool.Pool
}

func NewStaffRepo(pool *pgxpool.Pool) *StaffRepo {
	return &StaffRepo{pool: pool}
}

func (r *StaffRepo) Create(ctx context.Context, email, passwordHash, name string, role staff.Role) (staff.Staff, error) {
	now := time.Now().UTC()

	s := staff.Staff{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO staff(id, email, password_hash, name, role, active, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.Email, s.PasswordHash, s.Name, s.Role, s.Active, s.CreatedAt, s.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return staff.Staff{}, ErrEmailAlreadyUsed
		}

		return staff.Staff{}, err
	}

	return s, nil
}

func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (staff.Staff, error) {
	var s staff.Staff

	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, active, created_at, updated_at
		 FROM staff WHERE email = $1`, strings.ToLower(email),
	).Scan(&s.ID, &s.Email, &s.PasswordHash, &s.Name, &s.Role, &s.Active, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, ErrStaffNotFound
		}

		return staff.Staff{}, err
	}

	return s, nil
}

// UpdateAccess changes role and active flag only; identity fields
// stay immutable after creation.
func (r *StaffRepo) UpdateAccess(ctx context.Context, id string, role staff.Role, active bool) (staff.Staff, error) {
	var s staff.Staff

	err := r.pool.QueryRow(ctx,
		`UPDATE staff
			SET role = $2,
				active = $3,
				updated_at = $4
		 WHERE id = $1
		 RETURNING id, email, password_hash, name, role, active, created_at, updated_at`,
		id, role, active, time.Now().UTC(),
	).Scan(&s.ID, &s.Email, &s.PasswordHash, &s.Name, &s.Role, &s.Active, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, ErrStaffNotFound
		}

		return staff.Staff{}, err
	}

	return s, nil
}
