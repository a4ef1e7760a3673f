package entity

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository tracks per-entity ban state.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an entity repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CanAcceptComment reports whether new comments may be attached to the
// entity. Unknown entities are commentable.
func (r *Repository) CanAcceptComment(ctx context.Context, id string) (bool, error) {
	e, err := r.Get(ctx, id)
	if err == ErrNotFound {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !e.Banned, nil
}

// SetBanned creates the entity if needed and sets its ban flag.
func (r *Repository) SetBanned(ctx context.Context, id string, banned bool) error {
	if id == "" {
		return fmt.Errorf("entity id is required")
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO entities (id, banned) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET banned = excluded.banned`,
		id, banned,
	); err != nil {
		return fmt.Errorf("setting ban on entity %s: %w", id, err)
	}
	return nil
}

// Get returns the entity record or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*Entity, error) {
	var e Entity
	err := r.db.QueryRowContext(ctx,
		"SELECT id, banned FROM entities WHERE id = ?", id,
	).Scan(&e.ID, &e.Banned)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying entity: %w", err)
	}
	return &e, nil
}

// ListBanned returns all banned entities ordered by id.
func (r *Repository) ListBanned(ctx context.Context) (entities []*Entity, err error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, banned FROM entities WHERE banned = 1 ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("listing banned entities: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	entities = []*Entity{}
	for rows.Next() {
		var e Entity
		if err := rows.Scan(&e.ID, &e.Banned); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		entities = append(entities, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}

	return entities, nil
}
