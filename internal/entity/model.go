// Package entity provides the commentable entity model and its moderation
// state.
package entity

import "errors"

// ErrNotFound indicates no entity record exists for the id.
var ErrNotFound = errors.New("entity not found")

// Entity is an externally identified commentable resource, such as a blog
// post. An entity without a record is not banned.
type Entity struct {
	ID     string `json:"uniqueId"`
	Banned bool   `json:"banned"`
}
