package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/MohammedAlhaje/eleganza/internal/account"
	"github.com/MohammedAlhaje/eleganza/internal/worker"
	"github.com/MohammedAlhaje/eleganza/pkg/domain"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/MohammedAlhaje/eleganza/pkg/serrors"
	"github.com/MohammedAlhaje/eleganza/pkg/storage"
	mockstorage "github.com/MohammedAlhaje/eleganza/pkg/storage/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func validInput() account.SuperuserInput {
	return account.SuperuserInput{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "Admin123",
	}
}

// helper to wire Storage.WithTx to execute callback with a MockAllStorage.
func expectWithTx(
	t *testing.T,
	ctrl *gomock.Controller,
	m *mockstorage.MockStorage,
	fn func(tx *mockstorage.MockAllStorage)) {
	t.Helper()

	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			tx := mockstorage.NewMockAllStorage(ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

func TestBootstrapper_CreateSuperuser(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	b := account.NewBootstrapper(st)

	input := validInput()

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().UserByUsername(gomock.Any(), input.Username).Return(nil, nil)
		tx.EXPECT().UserByEmail(gomock.Any(), input.Email).Return(nil, nil)
		tx.EXPECT().StoreUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, user domain.User) (*domain.User, error) {
				require.Equal(t, input.Username, user.Username)
				require.Equal(t, input.Email, user.Email)
				require.True(t, user.IsSuperuser)
				require.True(t, user.IsStaff)
				require.True(t, user.IsActive)
				require.Equal(t, domain.UserTypeTeamMember, user.Type)
				require.NoError(t,
					bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)))
				require.WithinDuration(t, time.Now().UTC(), user.DateJoined, time.Minute)

				return &user, nil
			})
		tx.EXPECT().AddJob(gomock.Any(), worker.WelcomeEmailArgs{
			Email:    input.Email,
			Username: input.Username,
		}, gomock.Nil()).Return(true, nil)
	})

	created, err := b.CreateSuperuser(t.Context(), input)
	require.NoError(t, err)
	require.Equal(t, input.Username, created.Username)
}

func TestBootstrapper_CreateSuperuser_InvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	b := account.NewBootstrapper(st)

	cases := []struct {
		name   string
		mutate func(*account.SuperuserInput)
	}{
		{"MissingUsername", func(i *account.SuperuserInput) { i.Username = "" }},
		{"BadEmail", func(i *account.SuperuserInput) { i.Email = "not-an-email" }},
		{"ShortPassword", func(i *account.SuperuserInput) { i.Password = "short" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := b.CreateSuperuser(t.Context(), input)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}

func TestBootstrapper_CreateSuperuser_Conflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	b := account.NewBootstrapper(st)

	input := validInput()
	taken := &domain.User{Username: input.Username, Email: input.Email}

	t.Run("UsernameTaken", func(t *testing.T) {
		expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
			tx.EXPECT().UserByUsername(gomock.Any(), input.Username).Return(taken, nil)
		})

		_, err := b.CreateSuperuser(t.Context(), input)
		require.ErrorIs(t, err, serrors.ErrConflict)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
			tx.EXPECT().UserByUsername(gomock.Any(), input.Username).Return(nil, nil)
			tx.EXPECT().UserByEmail(gomock.Any(), input.Email).Return(taken, nil)
		})

		_, err := b.CreateSuperuser(t.Context(), input)
		require.ErrorIs(t, err, serrors.ErrConflict)
	})
}

func TestBootstrapper_HasSuperuser(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	b := account.NewBootstrapper(st)

	st.EXPECT().Superusers(gomock.Any()).Return(nil, nil)
	ok, err := b.HasSuperuser(t.Context())
	require.NoError(t, err)
	require.False(t, ok)

	st.EXPECT().Superusers(gomock.Any()).Return([]domain.User{{Username: "admin"}}, nil)
	ok, err = b.HasSuperuser(t.Context())
	require.NoError(t, err)
	require.True(t, ok)
}
