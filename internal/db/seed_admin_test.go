package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/midcare/pflegedoc/internal/config"
	"github.com/midcare/pflegedoc/internal/domain/staff"
	"github.com/midcare/pflegedoc/internal/repo/postgres"
)

// fakeStaffCreator stores emails lowercased like the real repo and
// reports a duplicate on the second create for the same address.
type fakeStaffCreator struct {
	existing map[string]struct{}
	created  []staff.Staff
}

func newFakeStaffCreator() *fakeStaffCreator {
	return &fakeStaffCreator{existing: make(map[string]struct{})}
}

func (f *fakeStaffCreator) Create(_ context.Context, email, passwordHash, name string, role staff.Role) (staff.Staff, error) {
	key := strings.ToLower(email)

	if _, ok := f.existing[key]; ok {
		return staff.Staff{}, postgres.ErrEmailAlreadyUsed
	}

	f.existing[key] = struct{}{}

	s := staff.Staff{Email: key, PasswordHash: passwordHash, Name: name, Role: role, Active: true}
	f.created = append(f.created, s)

	return s, nil
}

func TestSeedAdminIdempotentAcrossRestarts(t *testing.T) {
	repo := newFakeStaffCreator()
	cfg := config.Config{
		AdminEmail:    "Admin@Example.org",
		AdminPassword: "geheim123",
		AdminName:     "Administrator",
	}

	// first boot creates the account
	if err := seedAdmin(context.Background(), repo, cfg); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created %d accounts, want 1", len(repo.created))
	}

	if repo.created[0].Email != "admin@example.org" {
		t.Fatalf("stored email = %q, want lowercased", repo.created[0].Email)
	}

	if repo.created[0].Role != staff.RoleAdmin {
		t.Fatalf("stored role = %q, want admin", repo.created[0].Role)
	}

	// second boot with the same mixed-case config must be a no-op,
	// not an error
	if err := seedAdmin(context.Background(), repo, cfg); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created %d accounts after restart, want 1", len(repo.created))
	}
}

type failingStaffCreator struct {
	err error
}

func (f *failingStaffCreator) Create(context.Context, string, string, string, staff.Role) (staff.Staff, error) {
	return staff.Staff{}, f.err
}

func TestSeedAdminPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &failingStaffCreator{err: boom}
	cfg := config.Config{AdminEmail: "admin@example.org", AdminPassword: "geheim123"}

	if err := seedAdmin(context.Background(), repo, cfg); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
