// Package eleganza exposes repository-level embedded assets shared by the
// operational commands: the canonical baseline migrations for every platform
// app and the translation catalogs rendered by the API layer.
package eleganza

import "embed"

// Migrations holds the canonical per-app schema migrations. The migrate
// wizard materializes this tree onto disk and goose applies the on-disk copy,
// so a reset can always be undone by regenerating from the binary.
//
//go:embed migrations
var Migrations embed.FS

// Locales holds the embedded translation catalogs, one YAML file per language.
//
//go:embed locales
var Locales embed.FS
