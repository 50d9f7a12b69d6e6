// Package sqlite implements the repository interfaces on top of SQLite.
//
// The driver is modernc.org/sqlite, a pure Go translation of SQLite: no C
// toolchain is needed to build or cross-compile the binary.
//
// DATABASE/SQL RECAP:
//   - sql.DB   is a connection pool, not a single connection
//   - sql.Tx   is a transaction (used by CreateBatch)
//   - sql.Rows must always be closed
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS reminders (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		text  TEXT NOT NULL DEFAULT '',
		email VARCHAR(120) NOT NULL
	);
`

// DB is the storage context for the application. It is opened once in main,
// handed to the server and closed on shutdown.
type DB struct {
	conn *sql.DB
	path string
}

// New opens the SQLite database at dbPath and makes sure the schema exists.
//
// dbPath examples:
//   - "data/reminder.db" → file-based database (persistent)
//   - ":memory:"         → in-memory database, lost on close
//
// An in-memory database exists per connection, so the pool is pinned to a
// single connection in that case; otherwise every pooled connection would
// see its own empty database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress. In-memory
	// databases report "memory" here, which is fine.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn, path: dbPath}

	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the data source the database was opened with.
func (db *DB) Path() string {
	return db.path
}

// Ping checks the database is still reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// Reset drops the reminders table and creates it again, discarding every
// record and restarting id assignment.
func (db *DB) Reset(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, `DROP TABLE IF EXISTS reminders`); err != nil {
		return fmt.Errorf("sqlite: dropping reminders table: %w", err)
	}
	if err := db.migrate(ctx); err != nil {
		return fmt.Errorf("sqlite: recreating schema: %w", err)
	}
	return nil
}

// migrate is idempotent: CREATE TABLE IF NOT EXISTS leaves existing data alone.
func (db *DB) migrate(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating reminders table: %w", err)
	}
	return nil
}
