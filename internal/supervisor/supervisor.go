// Package supervisor keeps the web process alive: it applies pending
// migrations once, then launches the process in a loop, waiting a fixed
// delay between restarts.
package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"go.uber.org/zap"
)

// Options configures a supervised run.
type Options struct {
	// Migrate is invoked exactly once, before the first launch. A failure
	// aborts the run without launching anything.
	Migrate func(ctx context.Context) error
	// Launch starts the supervised process and blocks until it exits,
	// returning its exit error if any.
	Launch func(ctx context.Context) error
	// RestartDelay is waited after every exit, successful or not.
	RestartDelay time.Duration

	// sleep is swapped in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run migrates once and then supervises the process until ctx is cancelled.
// Every exit, clean or not, is followed by the same restart delay.
func Run(ctx context.Context, options Options) error {
	if options.sleep == nil {
		options.sleep = sleepCtx
	}

	if err := options.Migrate(ctx); err != nil {
		return fmt.Errorf("could not migrate before starting: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		logger.Info(ctx, "launching web process")
		if err := options.Launch(ctx); err != nil {
			logger.Warn(ctx, "web process exited", zap.Error(err))
		} else {
			logger.Info(ctx, "web process exited cleanly")
		}

		logger.Info(ctx, "restarting after delay",
			zap.Duration("delay", options.RestartDelay))
		if err := options.sleep(ctx, options.RestartDelay); err != nil {
			return err
		}
	}
}
