package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/midcare/pflegedoc/internal/config"
	"github.com/midcare/pflegedoc/internal/domain/staff"
	"github.com/midcare/pflegedoc/internal/repo/postgres"
	"github.com/midcare/pflegedoc/internal/security"
)

// StaffCreator is the slice of the staff repo the seed needs.
type StaffCreator interface {
	Create(ctx context.Context, email, passwordHash, name string, role staff.Role) (staff.Staff, error)
}

// EnsureAdminUser seeds the configured admin account; a second start
// with the same config is a no-op.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	return seedAdmin(ctx, postgres.NewStaffRepo(pool), cfg)
}

// seedAdmin goes through the repo's create so the email gets the same
// lowercasing as every other account. A duplicate means the admin
// already exists, whatever casing the config uses.
func seedAdmin(ctx context.Context, repo StaffCreator, cfg config.Config) error {
	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, cfg.AdminEmail, hash, cfg.AdminName, staff.RoleAdmin)

	if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
		return nil
	}

	return err
}
