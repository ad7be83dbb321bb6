package storage

import (
	"context"

	"github.com/MohammedAlhaje/eleganza/pkg/domain"
)

// UserStorage defines the account operations needed by the superuser bootstrap
// and the admin API. Soft-deleted rows are invisible to every method.
type UserStorage interface {
	// StoreUser inserts a new user and returns the stored row as it exists in
	// the database (including generated fields).
	StoreUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByUsername fetches a user by exact username. Returns nil when not found.
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
	// UserByEmail fetches a user by exact email. Returns nil when not found.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	// Superusers returns all active superuser accounts ordered by date joined.
	Superusers(ctx context.Context) ([]domain.User, error)
	// CountUsers returns the number of live user rows.
	CountUsers(ctx context.Context) (int64, error)
}
