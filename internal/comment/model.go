// Package comment provides the comment domain model and data access.
package comment

import (
	"errors"
	"time"
)

var (
	// ErrEmptyContent indicates content that is empty after trimming.
	ErrEmptyContent = errors.New("content is empty or full of spaces")
	// ErrNotFound indicates no comment matched the entity and id.
	ErrNotFound = errors.New("comment not found")
)

// Comment is a short text attached to an entity.
type Comment struct {
	ID        int64     `json:"id"`
	EntityID  string    `json:"uniqueId"`
	Content   string    `json:"content"`
	IconID    int       `json:"iconId"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
}
