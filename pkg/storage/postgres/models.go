package postgres

import (
	"database/sql"
	"time"

	"github.com/MohammedAlhaje/eleganza/pkg/domain"
	"github.com/google/uuid"
)

// PgUser mirrors a row of the users table. The numeric primary key stays
// internal to the database; the domain layer only sees the public UUID.
type PgUser struct {
	RowID uuid.UUID `db:"uuid" goqu:"skipinsert"`

	Username sql.NullString `db:"username"`
	Email    string         `db:"email"`
	Password string         `db:"password"`

	DisplayName string `db:"display_name"`
	Type        string `db:"type"`

	IsStaff     bool `db:"is_staff"`
	IsSuperuser bool `db:"is_superuser"`
	IsActive    bool `db:"is_active"`

	LastLogin  sql.NullTime `db:"last_login"  goqu:"skipinsert"`
	DateJoined time.Time    `db:"date_joined"`
	CreatedAt  time.Time    `db:"created_at"  goqu:"skipinsert"`
	UpdatedAt  sql.NullTime `db:"updated_at"  goqu:"skipinsert"`
	DeletedAt  sql.NullTime `db:"deleted_at"  goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:          domain.UserID(p.RowID),
		Username:    p.Username.String,
		Email:       p.Email,
		Password:    p.Password,
		DisplayName: p.DisplayName,
		Type:        domain.UserType(p.Type),
		IsStaff:     p.IsStaff,
		IsSuperuser: p.IsSuperuser,
		IsActive:    p.IsActive,
		LastLogin:   p.LastLogin.Time,
		DateJoined:  p.DateJoined,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt.Time,
		DeletedAt:   p.DeletedAt.Time,
	}
}

func (p *PgUser) FromDomain(user domain.User) {
	*p = PgUser{
		RowID: uuid.UUID(user.ID),
		Username: sql.NullString{
			String: user.Username,
			Valid:  user.Username != "",
		},
		Email:       user.Email,
		Password:    user.Password,
		DisplayName: user.DisplayName,
		Type:        string(user.Type),
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		IsActive:    user.IsActive,
		LastLogin: sql.NullTime{
			Time:  user.LastLogin,
			Valid: !user.LastLogin.IsZero(),
		},
		DateJoined: user.DateJoined,
		CreatedAt:  user.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  user.UpdatedAt,
			Valid: !user.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  user.DeletedAt,
			Valid: !user.DeletedAt.IsZero(),
		},
	}
}

func pgUsersToDomain(users []PgUser) []domain.User {
	out := make([]domain.User, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToDomain())
	}

	return out
}
