package worker

import (
	"context"
	"fmt"

	"github.com/MohammedAlhaje/eleganza/internal/i18n"
	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// Sender delivers a single plain-text email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// WelcomeEmailWorker sends the onboarding email for new accounts. Delivery
// failures are returned so River retries with backoff.
type WelcomeEmailWorker struct {
	river.WorkerDefaults[WelcomeEmailArgs]

	sender  Sender
	catalog *i18n.Catalog
}

// NewWelcomeEmailWorker constructs a WelcomeEmailWorker.
func NewWelcomeEmailWorker(sender Sender, catalog *i18n.Catalog) *WelcomeEmailWorker {
	return &WelcomeEmailWorker{sender: sender, catalog: catalog}
}

// Work sends the welcome email for one job.
func (w *WelcomeEmailWorker) Work(ctx context.Context, job *river.Job[WelcomeEmailArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID), zap.String("email", job.Args.Email))

	subject := w.catalog.T("", "email.welcome.subject")
	body := w.catalog.Tf("", "email.welcome.body", job.Args.Username)

	if err := w.sender.Send(ctx, job.Args.Email, subject, body); err != nil {
		logger.Error(ctx, "error sending welcome email", zap.Error(err))

		return fmt.Errorf("could not send welcome email: %w", err)
	}

	logger.Info(ctx, "welcome email sent")

	return nil
}
