// Package repository implements the domain repository ports on SQLite and
// PostgreSQL through database/sql.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	internaldb "volunteer-roster/internal/db"
	"volunteer-roster/internal/domain"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// sqlStore carries the pools and dialect every repository shares. Reads go to
// the read pool; writes and transactions go to the write pool.
type sqlStore struct {
	write   *sql.DB
	read    *sql.DB
	dialect internaldb.Dialect
}

func newSQLStore(p *internaldb.Pools) sqlStore {
	return sqlStore{write: p.Write, read: p.Read, dialect: p.Dialect}
}

func (s sqlStore) bind(query string) string {
	return s.dialect.Rebind(query)
}

// inTx runs fn in a write transaction, committing on success.
func (s sqlStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// insertReturningID executes an INSERT ... RETURNING id and yields the new id.
func (s sqlStore) insertReturningID(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	var id int64
	if err := tx.QueryRowContext(ctx, s.bind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// updateByID executes an UPDATE that targets one id and reports NotFound when
// no row matched.
func (s sqlStore) updateByID(ctx context.Context, tx *sql.Tx, kind string, id int64, query string, args ...any) error {
	res, err := tx.ExecContext(ctx, s.bind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("%s %d not found", kind, id)
	}
	return nil
}

func (s sqlStore) deleteByID(ctx context.Context, table string, id int64) error {
	_, err := s.write.ExecContext(ctx, s.bind("DELETE FROM "+table+" WHERE id = ?"), id)
	return mapDBError(err)
}

func (s sqlStore) exists(ctx context.Context, table string, id int64) (bool, error) {
	var n int
	err := s.read.QueryRowContext(ctx, s.bind("SELECT COUNT(*) FROM "+table+" WHERE id = ?"), id).Scan(&n)
	if err != nil {
		return false, mapDBError(err)
	}
	return n > 0, nil
}

// expandIn rewrites each "IN (?)" bound to a slice into one placeholder per
// element. The result still uses ? placeholders and goes through bind.
func expandIn(query string, args ...any) (string, []any, error) {
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, fmt.Errorf("expand IN clause: %w", err)
	}
	return q, expanded, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	i := ni.Int64
	return &i
}

func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Message: "resource not found"}
	}
	if isUniqueViolation(err) {
		return &domain.ConflictError{Message: "resource already exists"}
	}
	if isForeignKeyViolation(err) {
		return &domain.ValidationError{Message: "referenced resource does not exist", Err: err}
	}
	return err
}

// mapNameConflict maps a uniqueness violation on the name column to a
// ConflictError naming the offending value.
func mapNameConflict(err error, kind, name string) error {
	if isUniqueViolation(err) {
		return domain.ErrConflict("%s named %q already exists", kind, name)
	}
	return mapDBError(err)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
