// Package db opens loudly's SQLite database and keeps its schema current.
package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// busyTimeout is how long a connection waits on a locked database before
// failing with SQLITE_BUSY.
const busyTimeout = 5 * time.Second

// Open opens (or creates) the database at path, creating missing parent
// directories, and brings the schema up to date.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	database, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := enableWAL(database); err != nil {
		return nil, closeWith(database, err)
	}

	if err := migrate(database); err != nil {
		return nil, closeWith(database, fmt.Errorf("running migrations: %w", err))
	}

	return database, nil
}

// dsn builds the mattn/go-sqlite3 connection string. Foreign keys and the
// busy timeout apply per connection, so they are set here for every pooled
// connection rather than by a one-off PRAGMA.
func dsn(path string) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", strconv.FormatInt(busyTimeout.Milliseconds(), 10))
	return "file:" + path + "?" + q.Encode()
}

// enableWAL switches the journal to WAL and checks that SQLite accepted it.
// The setting is stored in the database file.
func enableWAL(database *sql.DB) error {
	var mode string
	if err := database.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		return fmt.Errorf("setting journal mode: %w", err)
	}
	if !strings.EqualFold(mode, "wal") {
		return fmt.Errorf("journal mode is %q, want wal", mode)
	}
	return nil
}

// closeWith closes database after a failed Open and folds any close error
// into err.
func closeWith(database *sql.DB, err error) error {
	if cerr := database.Close(); cerr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, cerr)
	}
	return err
}
