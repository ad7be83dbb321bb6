// Package worker runs background jobs on the River queue: transactional
// email and periodic stats snapshots.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MohammedAlhaje/eleganza/internal/i18n"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Options configures the worker runtime.
type Options struct {
	MaxWorkers int
	// UserCountInterval enables the periodic user-count snapshot when
	// Schedule is set.
	UserCountInterval time.Duration
	StatsCacheTTL     time.Duration
	// Schedule turns this instance into a scheduler: it registers the
	// periodic jobs alongside the workers.
	Schedule bool
}

// Deps are the worker dependencies.
type Deps struct {
	Sender  Sender
	Catalog *i18n.Catalog
	Users   UserCounter
	Cache   SnapshotCache
}

// Start creates and starts a River client with all workers registered. The
// caller owns the returned client and must Stop it on shutdown.
func Start(ctx context.Context, dbPool *pgxpool.Pool, deps Deps, options Options) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewWelcomeEmailWorker(deps.Sender, deps.Catalog))
	river.AddWorker(workers, NewUserCountWorker(deps.Users, deps.Cache, options.StatsCacheTTL))

	config := &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: options.MaxWorkers},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	}

	if options.Schedule {
		config.PeriodicJobs = []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(options.UserCountInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return UserCountArgs{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		}
	}

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), config)
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
