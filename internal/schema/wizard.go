package schema

import (
	"context"
	"fmt"
)

// Wizard walks the operator through the full database rebuild flow. Every
// step is confirmed before it runs, so answering "n" to everything leaves
// the database and migration tree untouched.
type Wizard struct {
	Confirm func(label string, def bool) (bool, error)

	Reset     func(ctx context.Context) error
	Flush     func(ctx context.Context) error
	Generate  func(ctx context.Context) error
	Apply     func(ctx context.Context) error
	Superuser func(ctx context.Context) error
}

type wizardStep struct {
	label string
	def   bool
	run   func(ctx context.Context) error
}

// Run executes the wizard steps in order. A declined step is skipped, a
// failed step aborts the remaining ones.
func (w Wizard) Run(ctx context.Context) error {
	steps := []wizardStep{
		{"Reset migration files?", true, w.Reset},
		{"Flush all data from the database?", false, w.Flush},
		{"Generate migration files?", true, w.Generate},
		{"Apply migrations to the database?", true, w.Apply},
		{"Create a superuser account?", true, w.Superuser},
	}

	for _, step := range steps {
		ok, err := w.Confirm(step.label, step.def)
		if err != nil {
			return fmt.Errorf("could not read answer for %q: %w", step.label, err)
		}
		if !ok {
			continue
		}

		if err := step.run(ctx); err != nil {
			return fmt.Errorf("step %q failed: %w", step.label, err)
		}
	}

	return nil
}
