// Package schema manages the per-app migrations tree of the Eleganza
// platform: resetting generated files, materializing the embedded baseline,
// applying migrations with goose and flushing table data.
//
// Each app owns one subdirectory of the migrations root. A permanent marker
// file identifies the directory as managed; every other regular file in it is
// considered generated and therefore fair game for Reset.
package schema

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MohammedAlhaje/eleganza/pkg/logger"
	"go.uber.org/zap"
)

// App names a platform application owning a migrations directory.
type App string

// Apps lists every platform application in schema dependency order. Apply
// walks the list forward; Flush truncates in reverse.
var Apps = []App{"core", "users", "vendors", "products", "orders", "payments"} //nolint: gochecknoglobals

// Marker is the permanent per-app file that survives a reset. Its presence
// keeps the directory under version control even when empty.
const Marker = ".keep"

// CheckRoot verifies the migrations root exists and is a directory. Commands
// abort before doing anything else when this fails.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("migrations directory %q is not accessible: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("migrations path %q is not a directory", root)
	}

	return nil
}

// Reset deletes all generated migration files and cache subdirectories for
// the given apps, keeping each app's marker file. Every removal is logged.
// It returns the paths it removed.
//
// Apps without a directory under root are skipped with a warning: the fixed
// app list may be ahead of a partially generated tree.
func Reset(ctx context.Context, root string, apps []App) ([]string, error) {
	var removed []string

	for _, app := range apps {
		dir := filepath.Join(root, string(app))

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn(ctx, "app migrations directory missing, skipping",
					zap.String("app", string(app)), zap.String("dir", dir))

				continue
			}

			return removed, fmt.Errorf("could not read %q: %w", dir, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() && entry.Name() == Marker {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				// cache directories left behind by tooling
				if err := os.RemoveAll(path); err != nil {
					return removed, fmt.Errorf("could not remove cache dir %q: %w", path, err)
				}
			} else if err := os.Remove(path); err != nil {
				return removed, fmt.Errorf("could not remove %q: %w", path, err)
			}

			logger.Info(ctx, "removed", zap.String("app", string(app)), zap.String("path", path))
			removed = append(removed, path)
		}
	}

	return removed, nil
}

// Generate materializes the embedded baseline migrations from src into the
// on-disk tree under root, creating app directories and markers as needed.
// Files already present on disk are left untouched so local edits survive.
// It returns the paths it wrote.
func Generate(ctx context.Context, src fs.FS, root string) ([]string, error) {
	var written []string

	for _, app := range Apps {
		dir := filepath.Join(root, string(app))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return written, fmt.Errorf("could not create %q: %w", dir, err)
		}

		// the marker is not part of the embedded tree, ensure it exists
		markerPath := filepath.Join(dir, Marker)
		if _, err := os.Stat(markerPath); os.IsNotExist(err) {
			if err := os.WriteFile(markerPath, nil, 0o644); err != nil {
				return written, fmt.Errorf("could not create marker %q: %w", markerPath, err)
			}
		}

		entries, err := fs.ReadDir(src, string(app))
		if err != nil {
			return written, fmt.Errorf("could not read embedded migrations for app %q: %w", app, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
				continue
			}

			dst := filepath.Join(dir, entry.Name())
			if _, err := os.Stat(dst); err == nil {
				continue // keep what is already on disk
			}

			data, err := fs.ReadFile(src, string(app)+"/"+entry.Name())
			if err != nil {
				return written, fmt.Errorf("could not read embedded migration %q: %w", entry.Name(), err)
			}
			if err := os.WriteFile(dst, data, 0o644); err != nil {
				return written, fmt.Errorf("could not write %q: %w", dst, err)
			}

			logger.Info(ctx, "generated", zap.String("app", string(app)), zap.String("path", dst))
			written = append(written, dst)
		}
	}

	return written, nil
}

// hasMigrationFiles reports whether dir holds at least one SQL migration.
func hasMigrationFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("could not read %q: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			return true, nil
		}
	}

	return false, nil
}
