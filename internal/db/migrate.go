package db

import (
	"database/sql"
	"fmt"
	"path"

	"github.com/pressly/goose/v3"
)

// RunMigrations executes all pending goose migrations for the dialect.
func RunMigrations(db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(EmbedMigrations)

	if err := goose.SetDialect(dialect.Name); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, path.Join("migrations", dialect.Name)); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// MigrationVersion reports the current schema version.
func MigrationVersion(db *sql.DB, dialect Dialect) (int64, error) {
	goose.SetBaseFS(EmbedMigrations)

	if err := goose.SetDialect(dialect.Name); err != nil {
		return 0, fmt.Errorf("goose set dialect: %w", err)
	}
	v, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}
	return v, nil
}
