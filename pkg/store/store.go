// Package store holds the document store that journal entries are persisted to.
package store

import (
	"context"
	"errors"

	"tableflip.dev/diary/pkg/entry"
)

// ErrNotFound is returned when the addressed entry does not exist.
var ErrNotFound = errors.New("store: entry not found")

// Persistence defines the persistence contract for journal entries. The store
// owns identity: Create assigns the ID and the creation timestamp.
type Persistence interface {
	List(ctx context.Context) ([]*entry.Entry, error)
	Create(ctx context.Context, title, content string) (*entry.Entry, error)
	Update(ctx context.Context, id, title, content string) error
	Delete(ctx context.Context, id string) error
}

// Watcher is implemented by stores that can report changes made by other
// writers.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Config provides the location of the on-disk store.
type Config interface {
	BasePath() string
}
