package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLiteStore keeps sessions in the sessions table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates a session store over an opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Load returns the values of an unexpired session. Expired sessions are
// deleted on sight.
func (s *SQLiteStore) Load(ctx context.Context, id string) (Values, error) {
	var data string
	var expiresAt time.Time

	err := s.db.QueryRowContext(ctx,
		"SELECT data, expires_at FROM sessions WHERE id = ?", id,
	).Scan(&data, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	if s.now().After(expiresAt) {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
			return nil, fmt.Errorf("deleting expired session: %w", err)
		}
		return nil, ErrNotFound
	}

	var values Values
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		// A corrupt row is as good as no session.
		return nil, ErrNotFound
	}
	return values, nil
}

// Save inserts or replaces a session.
func (s *SQLiteStore) Save(ctx context.Context, id string, values Values, expiresAt time.Time) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, data, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		id, string(data), expiresAt.UTC(),
	); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Cleanup removes expired sessions and reports how many were deleted.
func (s *SQLiteStore) Cleanup(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("cleaning up sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}
