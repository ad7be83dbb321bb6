package postgres_test

import (
	"database/sql"
	"testing"

	"github.com/MohammedAlhaje/eleganza/internal/schema"
	"github.com/MohammedAlhaje/eleganza/internal/worker"
	"github.com/stretchr/testify/require"
)

func TestAddJob(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := t.Context()

	require.NoError(t, schema.ApplyQueue(ctx, pgSQL.DB.(*sql.DB)))

	args := worker.WelcomeEmailArgs{Email: "admin@example.com", Username: "admin"}

	inserted, err := pgSQL.AddJob(ctx, args, nil)
	require.NoError(t, err)
	require.True(t, inserted)

	// unique by args, the second insert is skipped
	inserted, err = pgSQL.AddJob(ctx, args, nil)
	require.NoError(t, err)
	require.False(t, inserted)
}
