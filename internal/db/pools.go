package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Pools bundles the handles a SQL store needs. For SQLite, Write is the
// single-connection pool and Read the shared reader pool; for PostgreSQL both
// point at the same pool.
type Pools struct {
	Write   *sql.DB
	Read    *sql.DB
	Dialect Dialect
}

// Open connects to the store described by dialect and dsn (a file path for
// SQLite, a URL for PostgreSQL) and runs pending migrations.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Pools, error) {
	var p Pools
	p.Dialect = dialect

	switch dialect.Name {
	case SQLite.Name:
		w, r, err := OpenSQLitePair(dsn, 4)
		if err != nil {
			return nil, err
		}
		p.Write, p.Read = w, r
	case Postgres.Name:
		pg, err := OpenPostgres(ctx, dsn, 0)
		if err != nil {
			return nil, err
		}
		p.Write, p.Read = pg, pg
	default:
		return nil, fmt.Errorf("unsupported SQL dialect %q", dialect.Name)
	}

	if err := RunMigrations(p.Write, dialect); err != nil {
		_ = p.Close()
		return nil, err
	}
	return &p, nil
}

// Close releases both pools.
func (p *Pools) Close() error {
	if p.Read == p.Write {
		return p.Write.Close()
	}
	return errors.Join(p.Read.Close(), p.Write.Close())
}
