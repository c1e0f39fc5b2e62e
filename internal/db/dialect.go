package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Dialect describes the SQL flavour of a store backend.
type Dialect struct {
	Name       string // migrations subdirectory and goose dialect
	DriverName string // database/sql driver name
	bindType   int    // sqlx bind type for placeholder rewriting
	lowerWith  string // collation lower() folds with; empty uses the column's
}

// Supported dialects.
var (
	SQLite   = Dialect{Name: "sqlite3", DriverName: sqliteDriverName, bindType: sqlx.QUESTION}
	Postgres = Dialect{Name: "postgres", DriverName: "pgx", bindType: sqlx.DOLLAR, lowerWith: "default"}
)

// DialectByName resolves a configured store driver to its Dialect.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported SQL dialect %q", name)
	}
}

// Rebind rewrites ? placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.bindType, query)
}

// Lower returns a case-folding expression over expr. PostgreSQL name columns
// are COLLATE "C", under which lower() only folds ASCII, so the fold runs in
// the database's default collation instead.
func (d Dialect) Lower(expr string) string {
	if d.lowerWith == "" {
		return "LOWER(" + expr + ")"
	}
	return "LOWER(" + expr + ` COLLATE "` + d.lowerWith + `")`
}
