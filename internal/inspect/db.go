// Package inspect opens a TaskMaster SQLite database read-only and builds a
// structured report of its schema and contents. Retrieval is decoupled from
// rendering so the same report can be emitted as text or JSON.
package inspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// sqliteBusyTimeout is the time SQLite waits when the database is locked.
// After this, operations return SQLITE_BUSY.
const sqliteBusyTimeout = 10000 // milliseconds

// DB is a read-only connection to a TaskMaster database.
type DB struct {
	sql  *sql.DB
	path string
}

// Open opens the database at path read-only. The file must exist; mode=ro
// prevents the driver from creating it and rejects any write statement.
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("open sqlite: path is empty")
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d", path, sqliteBusyTimeout)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	slog.Debug("opened database", "path", path)

	return &DB{sql: db, path: path}, nil
}

// Path returns the filesystem path the connection was opened with.
func (d *DB) Path() string {
	return d.path
}

// Close releases the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}

	return d.sql.Close()
}
