package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded schema migrations for the given dialect.
func Migrate(conn *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrationsFS)

	gooseDialect := dialect.Name()
	if gooseDialect == "sqlite" {
		gooseDialect = "sqlite3"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(conn, "migrations/"+dialect.Name()); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrateUpTo applies migrations up to and including version. Useful when
// the demo seed data is not wanted, e.g. in tests.
func MigrateUpTo(conn *sql.DB, dialect Dialect, version int64) error {
	goose.SetBaseFS(migrationsFS)

	gooseDialect := dialect.Name()
	if gooseDialect == "sqlite" {
		gooseDialect = "sqlite3"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpTo(conn, "migrations/"+dialect.Name(), version); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
