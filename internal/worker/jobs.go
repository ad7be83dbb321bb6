package worker

import "github.com/riverqueue/river"

// WelcomeEmailArgs asks the worker to send the onboarding email to a freshly
// created account. Unique by args so re-running the bootstrap never sends the
// same welcome twice.
type WelcomeEmailArgs struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Kind implements river.JobArgs.
func (WelcomeEmailArgs) Kind() string { return "WelcomeEmail" }

// InsertOpts implements river.JobArgsWithInsertOpts.
func (WelcomeEmailArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	}
}

// UserCountArgs asks the worker to snapshot the live user count into the
// cache. Scheduled periodically, also enqueued once on worker startup.
type UserCountArgs struct{}

// Kind implements river.JobArgs.
func (UserCountArgs) Kind() string { return "UserCountSnapshot" }
