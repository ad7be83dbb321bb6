package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Count int64     `json:"count"`
	At    time.Time `json:"at"`
}

func setupTestCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := New(t.Context(), Options{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return mr, c
}

func TestSetAndGetJSON(t *testing.T) {
	_, c := setupTestCache(t)

	expected := snapshot{Count: 42, At: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, c.SetJSON(t.Context(), "stats:users_count", expected, time.Minute))

	var actual snapshot
	found, err := c.GetJSON(t.Context(), "stats:users_count", &actual)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, expected, actual)
}

func TestGetJSONMissingKey(t *testing.T) {
	_, c := setupTestCache(t)

	var out snapshot
	found, err := c.GetJSON(t.Context(), "no_such_key", &out)
	require.NoError(t, err)
	require.False(t, found)
}

func TestInvalidate(t *testing.T) {
	_, c := setupTestCache(t)

	require.NoError(t, c.SetJSON(t.Context(), "k", snapshot{Count: 1}, time.Minute))
	require.NoError(t, c.Invalidate(t.Context(), "k"))

	var out snapshot
	found, err := c.GetJSON(t.Context(), "k", &out)
	require.NoError(t, err)
	require.False(t, found)
}

func TestSetJSONRespectsTTL(t *testing.T) {
	mr, c := setupTestCache(t)

	require.NoError(t, c.SetJSON(t.Context(), "k", snapshot{Count: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out snapshot
	found, err := c.GetJSON(t.Context(), "k", &out)
	require.NoError(t, err)
	require.False(t, found)
}
