package db

import "embed"

// EmbedMigrations contains the embedded SQL migration files, one
// subdirectory per dialect.
//
//go:embed migrations/sqlite3/*.sql migrations/postgres/*.sql
var EmbedMigrations embed.FS
