package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is the public identifier of a user used in API interactions.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical UUID form.
func (id UserID) String() string { return uuid.UUID(id).String() }

// UserType distinguishes customers from platform team members.
type UserType string

const (
	// UserTypeCustomer is a regular storefront account.
	UserTypeCustomer UserType = "CUSTOMER"
	// UserTypeTeamMember is a platform staff account.
	UserTypeTeamMember UserType = "TEAM_MEMBER"
)

// User represents a platform account. Password always carries the bcrypt hash,
// never the plaintext.
type User struct {
	ID       UserID
	Username string
	Email    string
	Password string

	DisplayName string
	Type        UserType

	IsStaff     bool
	IsSuperuser bool
	IsActive    bool

	LastLogin  time.Time
	DateJoined time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  time.Time
}
