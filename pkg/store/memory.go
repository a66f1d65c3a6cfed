package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/diary/pkg/entry"
)

// Memory is an in-process Persistence. Documents do not survive the process.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]*entry.Entry
	now  func() time.Time
}

var _ Persistence = (*Memory)(nil)

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]*entry.Entry),
		now:  time.Now,
	}
}

func (m *Memory) List(ctx context.Context) ([]*entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*entry.Entry, 0, len(m.docs))
	for _, e := range m.docs {
		all = append(all, e.Clone())
	}
	sortEntries(all)
	return all, nil
}

func (m *Memory) Create(ctx context.Context, title, content string) (*entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e := &entry.Entry{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Created: entry.Timestamp{Time: m.now().UTC()},
	}
	m.mu.Lock()
	m.docs[e.ID] = e
	m.mu.Unlock()
	return e.Clone(), nil
}

func (m *Memory) Update(ctx context.Context, id, title, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.docs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.Title = title
	e.Content = content
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.docs, id)
	return nil
}

// Put inserts e as-is, keeping its ID and timestamp. It is used to seed a
// store with existing documents.
func (m *Memory) Put(e *entry.Entry) {
	if e == nil {
		return
	}
	m.mu.Lock()
	m.docs[e.ID] = e.Clone()
	m.mu.Unlock()
}
