package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"fitclub/internal/domain/account"

	"github.com/google/uuid"
)

// AccountStoreForSeed defines the store interface needed by the admin seeder.
type AccountStoreForSeed interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// SeedAdminInput carries the credentials for the initial admin account.
type SeedAdminInput struct {
	Name     string
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for the admin seeder.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
}

// ExecuteSeedAdmin creates the initial staff account if none exists yet.
// It is idempotent: if any account already exists, or the configured email
// is already taken, it does nothing.
// PRE: Database schema is initialized.
// POST: At least one account exists when input credentials are provided.
func ExecuteSeedAdmin(ctx context.Context, deps SeedAdminDeps, input SeedAdminInput) error {
	if input.Email == "" || input.Password == "" {
		return nil
	}

	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed admin: count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return nil // already exists
	}

	name := input.Name
	if name == "" {
		name = "Administrator"
	}
	acct := account.Account{
		ID:    uuid.New().String(),
		Name:  name,
		Email: input.Email,
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return fmt.Errorf("seed admin %s: set password: %w", input.Email, err)
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return fmt.Errorf("seed admin %s: save: %w", input.Email, err)
	}

	slog.Info("seed_event", "event", "admin_created", "email", input.Email)
	return nil
}
