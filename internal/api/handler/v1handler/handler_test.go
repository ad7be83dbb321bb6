package v1handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/MohammedAlhaje/eleganza/internal/api/handler/v1handler"
	"github.com/MohammedAlhaje/eleganza/internal/i18n"
	"github.com/MohammedAlhaje/eleganza/internal/worker"
	"github.com/MohammedAlhaje/eleganza/pkg/domain"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/MohammedAlhaje/eleganza/pkg/serrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

type fakeUsers struct {
	superusers []domain.User
	count      int64
	err        error
}

func (f *fakeUsers) Superusers(context.Context) ([]domain.User, error) {
	return f.superusers, f.err
}

func (f *fakeUsers) CountUsers(context.Context) (int64, error) {
	return f.count, f.err
}

type fakeCache struct {
	pingErr  error
	snapshot *worker.UserCountSnapshot
	getErr   error
}

func (f *fakeCache) Ping(context.Context) error { return f.pingErr }

func (f *fakeCache) GetJSON(_ context.Context, _ string, result any) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	if f.snapshot == nil {
		return false, nil
	}

	*result.(*worker.UserCountSnapshot) = *f.snapshot

	return true, nil
}

type fakeDB struct {
	pingErr error
}

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }

func testCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()

	c, err := i18n.Load(fstest.MapFS{
		"locales/en.yml": &fstest.MapFile{Data: []byte(
			"health.ok: \"All systems operational\"\n" +
				"health.degraded: \"Service degraded\"\n" +
				"stats.users: \"Registered users\"\n" +
				"errors.unauthorized: \"Authentication required\"\n" +
				"errors.internal: \"Internal server error\"\n")},
		"locales/ar.yml": &fstest.MapFile{Data: []byte(
			"health.ok: \"كل الأنظمة تعمل\"\n")},
	}, "locales")
	require.NoError(t, err)

	return c
}

func newTestMux(t *testing.T, deps v1handler.Deps, secret string) *http.ServeMux {
	t.Helper()

	if deps.Catalog == nil {
		deps.Catalog = testCatalog(t)
	}

	h := v1handler.New(deps)
	mux := http.NewServeMux()
	h.Register(mux, h.BearerAuth(secret))

	return mux
}

func doRequest(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	t.Run("AllHealthy", func(t *testing.T) {
		mux := newTestMux(t, v1handler.Deps{
			Users: &fakeUsers{}, Cache: &fakeCache{}, Database: &fakeDB{},
		}, "s")

		rec := doRequest(mux, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Status   string            `json:"status"`
			Message  string            `json:"message"`
			Services map[string]string `json:"services"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "ok", body.Status)
		require.Equal(t, "All systems operational", body.Message)
		require.Equal(t, "ok", body.Services["database"])
		require.Equal(t, "ok", body.Services["cache"])
	})

	t.Run("DegradedCache", func(t *testing.T) {
		mux := newTestMux(t, v1handler.Deps{
			Users:    &fakeUsers{},
			Cache:    &fakeCache{pingErr: serrors.With(serrors.ErrUnavailable, "down")},
			Database: &fakeDB{},
		}, "s")

		rec := doRequest(mux, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body struct {
			Status   string            `json:"status"`
			Services map[string]string `json:"services"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "degraded", body.Status)
		require.Equal(t, "degraded", body.Services["cache"])
		require.Equal(t, "ok", body.Services["database"])
	})

	t.Run("LocalizedMessage", func(t *testing.T) {
		mux := newTestMux(t, v1handler.Deps{
			Users: &fakeUsers{}, Cache: &fakeCache{}, Database: &fakeDB{},
		}, "s")

		req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
		req.Header.Set("Accept-Language", "ar")

		rec := doRequest(mux, req)
		require.Contains(t, rec.Body.String(), "كل الأنظمة تعمل")
	})
}

func TestStats(t *testing.T) {
	t.Run("ServedFromCache", func(t *testing.T) {
		at := time.Now().UTC().Truncate(time.Second)
		mux := newTestMux(t, v1handler.Deps{
			Users:    &fakeUsers{count: 99},
			Cache:    &fakeCache{snapshot: &worker.UserCountSnapshot{Count: 42, At: at}},
			Database: &fakeDB{},
		}, "s")

		rec := doRequest(mux, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Users  int64 `json:"users"`
			Cached bool  `json:"cached"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.EqualValues(t, 42, body.Users)
		require.True(t, body.Cached)
	})

	t.Run("ColdCacheFallsBackToDatabase", func(t *testing.T) {
		mux := newTestMux(t, v1handler.Deps{
			Users: &fakeUsers{count: 7}, Cache: &fakeCache{}, Database: &fakeDB{},
		}, "s")

		rec := doRequest(mux, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Users  int64 `json:"users"`
			Cached bool  `json:"cached"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.EqualValues(t, 7, body.Users)
		require.False(t, body.Cached)
	})

	t.Run("CacheErrorStillServes", func(t *testing.T) {
		mux := newTestMux(t, v1handler.Deps{
			Users:    &fakeUsers{count: 3},
			Cache:    &fakeCache{getErr: serrors.With(serrors.ErrUnavailable, "down")},
			Database: &fakeDB{},
		}, "s")

		rec := doRequest(mux, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("DatabaseErrorIs500", func(t *testing.T) {
		mux := newTestMux(t, v1handler.Deps{
			Users:    &fakeUsers{err: serrors.With(serrors.ErrInternal, "boom")},
			Cache:    &fakeCache{},
			Database: &fakeDB{},
		}, "s")

		rec := doRequest(mux, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "Internal server error")
	})
}

func signToken(t *testing.T, secret string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestAdminUsers(t *testing.T) {
	const secret = "test-secret"

	admin := domain.User{
		Username:    "admin",
		Email:       "admin@example.com",
		IsSuperuser: true,
		IsActive:    true,
		DateJoined:  time.Now().UTC(),
	}

	t.Run("MissingTokenIs401", func(t *testing.T) {
		mux := newTestMux(t, v1handler.Deps{
			Users: &fakeUsers{superusers: []domain.User{admin}},
			Cache: &fakeCache{}, Database: &fakeDB{},
		}, secret)

		rec := doRequest(mux, httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Authentication required")
	})

	t.Run("BadTokenIs401", func(t *testing.T) {
		mux := newTestMux(t, v1handler.Deps{
			Users: &fakeUsers{superusers: []domain.User{admin}},
			Cache: &fakeCache{}, Database: &fakeDB{},
		}, secret)

		req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret"))

		rec := doRequest(mux, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidTokenListsSuperusers", func(t *testing.T) {
		mux := newTestMux(t, v1handler.Deps{
			Users: &fakeUsers{superusers: []domain.User{admin}},
			Cache: &fakeCache{}, Database: &fakeDB{},
		}, secret)

		req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret))

		rec := doRequest(mux, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Users []struct {
				Username string `json:"username"`
				Email    string `json:"email"`
			} `json:"users"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Users, 1)
		require.Equal(t, "admin", body.Users[0].Username)
	})
}
