package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // SQLite driver
)

// Connect opens a handle to the configured engine. A non-empty databaseURL
// selects Postgres; otherwise a local SQLite file at sqlitePath is used,
// mirroring the deployment vs. on-site laptop setups.
func Connect(databaseURL, sqlitePath string, timeout time.Duration) (*sql.DB, Dialect, error) {
	var (
		conn    *sql.DB
		dialect Dialect
		err     error
	)

	if databaseURL != "" {
		conn, err = sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database handle: %w", err)
		}
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(25)
		conn.SetConnMaxLifetime(5 * time.Minute)
		dialect = PostgresDialect{}
	} else {
		dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqlitePath)
		conn, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database handle: %w", err)
		}
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY
		// under concurrent submissions.
		conn.SetMaxOpenConns(1)
		dialect = SQLiteDialect{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = conn.PingContext(ctx); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, nil, fmt.Errorf("failed to ping database within %v: %w (close error: %v)", timeout, err, closeErr)
		}
		return nil, nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return conn, dialect, nil
}
