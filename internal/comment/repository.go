package comment

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultPageSize is used when a Repository is created without one.
const DefaultPageSize = 20

// Repository provides create, list and delete operations for comments.
type Repository struct {
	db       *sql.DB
	pageSize int
	now      func() time.Time
}

// NewRepository creates a comment repository. pageSize is the limit used
// when List is called without a positive limit.
func NewRepository(db *sql.DB, pageSize int) *Repository {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Repository{db: db, pageSize: pageSize, now: time.Now}
}

// PageSize returns the default page size.
func (r *Repository) PageSize() int {
	return r.pageSize
}

// Create stores a new comment on an entity. It does not check whether the
// entity is banned; callers do that first.
func (r *Repository) Create(ctx context.Context, entityID, content, nickname string, iconID int) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if iconID < 0 {
		iconID = 0
	}

	c := Comment{
		EntityID:  entityID,
		Content:   content,
		IconID:    iconID,
		Nickname:  nickname,
		CreatedAt: r.now().UTC(),
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (entity_id, content, icon_id, nickname, created_at) VALUES (?, ?, ?, ?, ?)",
		c.EntityID, c.Content, c.IconID, c.Nickname, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	c.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return &c, nil
}

// List returns one page of an entity's comments in insertion order. page is
// zero-based; a limit <= 0 selects the default page size.
func (r *Repository) List(ctx context.Context, entityID string, page, limit int) (comments []*Comment, err error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = r.pageSize
	}
	// An offset past MaxInt64 is past every row.
	if int64(page) > math.MaxInt64/int64(limit) {
		return []*Comment{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entity_id, content, icon_id, nickname, created_at
		 FROM comments WHERE entity_id = ? ORDER BY id ASC LIMIT ? OFFSET ?`,
		entityID, limit, int64(page)*int64(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	comments = []*Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.EntityID, &c.Content, &c.IconID, &c.Nickname, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// Count returns the number of comments on an entity.
func (r *Repository) Count(ctx context.Context, entityID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE entity_id = ?", entityID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting comments: %w", err)
	}
	return n, nil
}

// DeleteOne removes the comment matching both entityID and id.
func (r *Repository) DeleteOne(ctx context.Context, entityID string, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM comments WHERE entity_id = ? AND id = ?", entityID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
