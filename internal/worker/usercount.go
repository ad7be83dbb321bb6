package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// UserCountCacheKey is where the snapshot is stored.
const UserCountCacheKey = "stats:users_count"

// UserCounter reports the number of live user rows.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// SnapshotCache persists JSON values with a TTL.
type SnapshotCache interface {
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// UserCountSnapshot is the cached payload served by the stats endpoint.
type UserCountSnapshot struct {
	Count int64     `json:"count"`
	At    time.Time `json:"at"`
}

// UserCountWorker periodically counts users and caches the result so the
// stats endpoint can answer without hitting the database.
type UserCountWorker struct {
	river.WorkerDefaults[UserCountArgs]

	users UserCounter
	cache SnapshotCache
	ttl   time.Duration
}

// NewUserCountWorker constructs a UserCountWorker. The TTL should exceed the
// snapshot interval so the cache never goes cold between runs.
func NewUserCountWorker(users UserCounter, cache SnapshotCache, ttl time.Duration) *UserCountWorker {
	return &UserCountWorker{users: users, cache: cache, ttl: ttl}
}

// Work takes one snapshot.
func (w *UserCountWorker) Work(ctx context.Context, job *river.Job[UserCountArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID))

	count, err := w.users.CountUsers(ctx)
	if err != nil {
		logger.Error(ctx, "error counting users", zap.Error(err))

		return fmt.Errorf("could not count users: %w", err)
	}

	snapshot := UserCountSnapshot{Count: count, At: time.Now().UTC()}
	if err := w.cache.SetJSON(ctx, UserCountCacheKey, snapshot, w.ttl); err != nil {
		logger.Error(ctx, "error caching user count", zap.Error(err))

		return fmt.Errorf("could not cache user count: %w", err)
	}

	logger.Info(ctx, "user count snapshot stored", zap.Int64("count", count))

	return nil
}
