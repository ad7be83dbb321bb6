package postgres

import (
	"context"
	"fmt"

	"github.com/MohammedAlhaje/eleganza/pkg/domain"
	"github.com/doug-martin/goqu/v9"
)

const usersTable = "users"

// notDeleted filters out soft-deleted rows.
var notDeleted = goqu.C("deleted_at").IsNull() //nolint: gochecknoglobals

// StoreUser inserts a new user and returns the stored row.
func (p *PgSQL) StoreUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var pgUser PgUser
	pgUser.FromDomain(user)

	var result []PgUser
	if err := p.Builder.Insert(usersTable).
		Rows(pgUser).
		Returning(&PgUser{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store user into pg: %w", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("insert into %s returned no rows", usersTable)
	}

	return result[0].ToDomain(), nil
}

// UserByUsername fetches a user by exact username, excluding soft-deleted rows.
// Returns nil when not found.
func (p *PgSQL) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return p.userWhere(ctx, goqu.C("username").Eq(username))
}

// UserByEmail fetches a user by exact email, excluding soft-deleted rows.
// Returns nil when not found.
func (p *PgSQL) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return p.userWhere(ctx, goqu.C("email").Eq(email))
}

func (p *PgSQL) userWhere(ctx context.Context, cond goqu.Expression) (*domain.User, error) {
	var result PgUser
	found, err := p.Builder.From(usersTable).
		Where(cond, notDeleted).
		ScanStructContext(ctx, &result)
	if err != nil {
		return nil, fmt.Errorf("could not get user from pg: %w", err)
	}
	if !found {
		return nil, nil //nolint: nilnil
	}

	return result.ToDomain(), nil
}

// Superusers returns all active superuser accounts ordered by date joined.
func (p *PgSQL) Superusers(ctx context.Context) ([]domain.User, error) {
	var result []PgUser
	if err := p.Builder.From(usersTable).
		Where(
			goqu.C("is_superuser").IsTrue(),
			goqu.C("is_active").IsTrue(),
			notDeleted,
		).
		Order(goqu.C("date_joined").Asc()).
		ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not list superusers from pg: %w", err)
	}

	return pgUsersToDomain(result), nil
}

// CountUsers returns the number of live user rows.
func (p *PgSQL) CountUsers(ctx context.Context) (int64, error) {
	count, err := p.Builder.From(usersTable).
		Where(notDeleted).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count users in pg: %w", err)
	}

	return count, nil
}
