// Package account creates and manages privileged user accounts.
package account

import (
	"context"
	"time"

	"github.com/MohammedAlhaje/eleganza/internal/worker"
	"github.com/MohammedAlhaje/eleganza/pkg/domain"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/MohammedAlhaje/eleganza/pkg/serrors"
	"github.com/MohammedAlhaje/eleganza/pkg/storage"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SuperuserInput carries the credentials for a new superuser account.
type SuperuserInput struct {
	Username string `validate:"required,max=150"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,max=128"`
}

// Bootstrapper creates superuser accounts and enqueues their welcome email in
// the same transaction, so neither happens without the other.
type Bootstrapper struct {
	storage  storage.Storage
	validate *validator.Validate
}

// NewBootstrapper returns a ready-to-use Bootstrapper.
func NewBootstrapper(st storage.Storage) *Bootstrapper {
	return &Bootstrapper{
		storage:  st,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateSuperuser validates the input, hashes the password and stores the
// account. Returns ErrBadRequest on invalid input and ErrConflict when the
// username or email is already taken.
func (b *Bootstrapper) CreateSuperuser(ctx context.Context, input SuperuserInput) (*domain.User, error) {
	if err := b.validate.Struct(input); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid superuser credentials")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not hash password")
	}

	var created *domain.User
	err = b.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.UserByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return serrors.With(serrors.ErrConflict, "username %q is already taken", input.Username)
		}

		existing, err = tx.UserByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return serrors.With(serrors.ErrConflict, "email %q is already registered", input.Email)
		}

		now := time.Now().UTC()
		created, err = tx.StoreUser(ctx, domain.User{
			Username:    input.Username,
			Email:       input.Email,
			Password:    string(hash),
			Type:        domain.UserTypeTeamMember,
			IsStaff:     true,
			IsSuperuser: true,
			IsActive:    true,
			DateJoined:  now,
		})
		if err != nil {
			return err
		}

		_, err = tx.AddJob(ctx, worker.WelcomeEmailArgs{
			Email:    created.Email,
			Username: created.Username,
		}, nil)

		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "created superuser",
		zap.String("username", created.Username),
		zap.String("email", created.Email))

	return created, nil
}

// HasSuperuser reports whether at least one active superuser exists.
func (b *Bootstrapper) HasSuperuser(ctx context.Context) (bool, error) {
	users, err := b.storage.Superusers(ctx)
	if err != nil {
		return false, err
	}

	return len(users) > 0, nil
}
