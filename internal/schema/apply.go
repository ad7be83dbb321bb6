package schema

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"go.uber.org/zap"
)

// defaultVersionTable restores goose's global state after per-app runs.
const defaultVersionTable = "goose_db_version"

// versionTable returns the goose version table for an app. Per-app tables let
// every app track its own schema history independently.
func versionTable(app App) string {
	return "goose_version_" + string(app)
}

// Apply runs all pending migrations for every app, in dependency order, each
// against its own goose version table. Apps whose directory holds no SQL files
// are skipped with a warning.
func Apply(ctx context.Context, db *sql.DB, root string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect to postgres: %w", err)
	}
	defer goose.SetTableName(defaultVersionTable)

	for _, app := range Apps {
		dir := filepath.Join(root, string(app))

		ok, err := hasMigrationFiles(dir)
		if err != nil {
			return err
		}
		if !ok {
			logger.Warn(ctx, "no migration files for app, skipping",
				zap.String("app", string(app)), zap.String("dir", dir))

			continue
		}

		goose.SetTableName(versionTable(app))
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("could not migrate app %q: %w", app, err)
		}

		logger.Info(ctx, "migrated app", zap.String("app", string(app)))
	}

	return nil
}

// ApplyQueue brings the River job queue schema up to its latest version.
func ApplyQueue(ctx context.Context, db *sql.DB) error {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return fmt.Errorf("could not create river queue migrator: %w", err)
	}

	migrations := migrator.AllVersions()
	latestVersion := migrations[len(migrations)-1].Version
	currentVersion := 0
	currentMigrations, err := migrator.ExistingVersions(ctx)
	if err != nil {
		return fmt.Errorf("could not get existing river queue migrations: %w", err)
	}
	if len(currentMigrations) > 0 {
		currentVersion = currentMigrations[len(currentMigrations)-1].Version
	}
	if latestVersion > currentVersion {
		if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{
			TargetVersion: latestVersion,
		}); err != nil {
			return fmt.Errorf("could not migrate river queue schema: %w", err)
		}
	}

	return nil
}

// flushOrder lists every app table in reverse dependency order. Flush only
// touches tables that actually exist so a partially migrated database can
// still be flushed.
var flushOrder = []string{ //nolint: gochecknoglobals
	"payments",
	"order_items",
	"orders",
	"cart_items",
	"carts",
	"inventory",
	"products",
	"categories",
	"vendors",
	"addresses",
	"users",
}

// Flush removes all rows from every app table while keeping the schema.
// Identity sequences restart at 1.
func Flush(ctx context.Context, db *sql.DB) error {
	var existing []string
	for _, table := range flushOrder {
		var regclass sql.NullString
		if err := db.QueryRowContext(ctx,
			"SELECT to_regclass($1)::text", table).Scan(&regclass); err != nil {
			return fmt.Errorf("could not check table %q: %w", table, err)
		}
		if regclass.Valid {
			existing = append(existing, table)
		}
	}

	if len(existing) == 0 {
		logger.Warn(ctx, "no app tables found, nothing to flush")

		return nil
	}

	stmt := "TRUNCATE TABLE " + strings.Join(existing, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("could not flush tables: %w", err)
	}

	logger.Info(ctx, "flushed tables", zap.Strings("tables", existing))

	return nil
}

// AppVersion pairs an app with its applied goose version.
type AppVersion struct {
	App     App
	Version int64
}

// Status reports the applied schema version per app. Apps with no version
// table yet report version 0.
func Status(ctx context.Context, db *sql.DB) ([]AppVersion, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("could not set goose dialect to postgres: %w", err)
	}
	defer goose.SetTableName(defaultVersionTable)

	out := make([]AppVersion, 0, len(Apps))
	for _, app := range Apps {
		goose.SetTableName(versionTable(app))
		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("could not get version for app %q: %w", app, err)
		}

		out = append(out, AppVersion{App: app, Version: version})
	}

	return out, nil
}
