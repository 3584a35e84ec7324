package db

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect isolates the per-engine differences so that repositories carry a
// single implementation over database/sql. Queries are written with `?`
// placeholders and passed through Rebind before execution.
type Dialect interface {
	Name() string
	Rebind(query string) string
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
	// ForUpdate returns the row-lock suffix for SELECT statements inside
	// transactions, or "" when the engine serializes writers by itself.
	ForUpdate() string
}

type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (PostgresDialect) IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (PostgresDialect) IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

func (PostgresDialect) ForUpdate() string { return " FOR UPDATE" }

type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) Rebind(query string) string { return query }

func (SQLiteDialect) IsUniqueViolation(err error) bool {
	var sqErr *sqlite.Error
	if !errors.As(err, &sqErr) {
		return false
	}
	return sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func (SQLiteDialect) IsForeignKeyViolation(err error) bool {
	var sqErr *sqlite.Error
	if !errors.As(err, &sqErr) {
		return false
	}
	// Insert-side FK checks fail with SQLITE_CONSTRAINT_FOREIGNKEY, but
	// SQLite implements ON DELETE RESTRICT through internal trigger
	// programs, so those violations surface as SQLITE_CONSTRAINT_TRIGGER.
	return sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY ||
		sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_TRIGGER
}

func (SQLiteDialect) ForUpdate() string { return "" }
