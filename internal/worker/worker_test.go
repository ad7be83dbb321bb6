package worker_test

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/MohammedAlhaje/eleganza/internal/i18n"
	"github.com/MohammedAlhaje/eleganza/internal/worker"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/MohammedAlhaje/eleganza/pkg/serrors"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

type fakeSender struct {
	to      string
	subject string
	body    string
	err     error
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body

	return f.err
}

type fakeCounter struct {
	count int64
	err   error
}

func (f *fakeCounter) CountUsers(context.Context) (int64, error) {
	return f.count, f.err
}

type fakeCache struct {
	key   string
	value any
	ttl   time.Duration
	err   error
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	f.key, f.value, f.ttl = key, value, ttl

	return f.err
}

func testCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()

	c, err := i18n.Load(fstest.MapFS{
		"locales/en.yml": &fstest.MapFile{Data: []byte(
			"email.welcome.subject: \"Welcome to Eleganza\"\n" +
				"email.welcome.body: \"Hello %s!\"\n")},
	}, "locales")
	require.NoError(t, err)

	return c
}

func TestWelcomeEmailWorker(t *testing.T) {
	job := &river.Job[worker.WelcomeEmailArgs]{
		JobRow: &rivertype.JobRow{ID: 1},
		Args:   worker.WelcomeEmailArgs{Email: "admin@example.com", Username: "admin"},
	}

	t.Run("SendsLocalizedEmail", func(t *testing.T) {
		sender := &fakeSender{}
		w := worker.NewWelcomeEmailWorker(sender, testCatalog(t))

		require.NoError(t, w.Work(t.Context(), job))
		require.Equal(t, "admin@example.com", sender.to)
		require.Equal(t, "Welcome to Eleganza", sender.subject)
		require.Equal(t, "Hello admin!", sender.body)
	})

	t.Run("DeliveryFailureIsReturned", func(t *testing.T) {
		sender := &fakeSender{err: serrors.With(serrors.ErrUnavailable, "smtp down")}
		w := worker.NewWelcomeEmailWorker(sender, testCatalog(t))

		require.ErrorIs(t, w.Work(t.Context(), job), serrors.ErrUnavailable)
	})
}

func TestUserCountWorker(t *testing.T) {
	job := &river.Job[worker.UserCountArgs]{JobRow: &rivertype.JobRow{ID: 1}}

	t.Run("StoresSnapshot", func(t *testing.T) {
		cache := &fakeCache{}
		w := worker.NewUserCountWorker(&fakeCounter{count: 7}, cache, 30*time.Minute)

		require.NoError(t, w.Work(t.Context(), job))
		require.Equal(t, worker.UserCountCacheKey, cache.key)
		require.Equal(t, 30*time.Minute, cache.ttl)

		snapshot, ok := cache.value.(worker.UserCountSnapshot)
		require.True(t, ok)
		require.EqualValues(t, 7, snapshot.Count)
		require.WithinDuration(t, time.Now().UTC(), snapshot.At, time.Minute)
	})

	t.Run("CountFailureIsReturned", func(t *testing.T) {
		w := worker.NewUserCountWorker(
			&fakeCounter{err: serrors.With(serrors.ErrUnavailable, "db down")},
			&fakeCache{}, time.Minute)

		require.ErrorIs(t, w.Work(t.Context(), job), serrors.ErrUnavailable)
	})

	t.Run("CacheFailureIsReturned", func(t *testing.T) {
		w := worker.NewUserCountWorker(
			&fakeCounter{count: 1},
			&fakeCache{err: serrors.With(serrors.ErrUnavailable, "redis down")},
			time.Minute)

		require.ErrorIs(t, w.Work(t.Context(), job), serrors.ErrUnavailable)
	})
}
