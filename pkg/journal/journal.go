// Package journal is the session's view of the entry store. It keeps an
// in-memory mirror of every entry, routes all mutations through the store and
// reports each outcome on a notification channel.
package journal

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/notify"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/viewmodel"
)

// Messages published on the notification channel.
const (
	MsgCreated      = "Journal saved successfully!"
	MsgCreateFailed = "Failed to save journal."
	MsgUpdated      = "Journal updated successfully!"
	MsgUpdateFailed = "Failed to update journal."
	MsgDeleted      = "Journal deleted successfully!"
	MsgDeleteFailed = "Failed to delete journal."
)

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger that records failure causes.
func WithLogger(log *zap.Logger) Option {
	return func(j *Journal) {
		if log != nil {
			j.log = log
		}
	}
}

// WithNotifier shares an existing notification channel.
func WithNotifier(n *notify.Channel) Option {
	return func(j *Journal) {
		if n != nil {
			j.notes = n
		}
	}
}

// Journal mirrors the entry store. Cache changes happen only after the store
// confirms them, and mutations of the same entry never overlap.
type Journal struct {
	store store.Persistence
	log   *zap.Logger
	notes *notify.Channel
	locks *keyLock
	// cycle is held for writing by Load across List and the swap, and for
	// reading by each mutation across its store round trip. A snapshot can
	// then never predate a mutation that commits before the swap.
	cycle sync.RWMutex

	mu      sync.RWMutex
	entries []*entry.Entry

	eventCh chan ChangeMsg
}

// New returns an empty journal backed by p.
func New(p store.Persistence, opts ...Option) *Journal {
	j := &Journal{
		store:   p,
		log:     zap.NewNop(),
		locks:   newKeyLock(),
		eventCh: make(chan ChangeMsg, 64),
	}
	for _, opt := range opts {
		opt(j)
	}
	if j.notes == nil {
		j.notes = notify.New()
	}
	return j
}

// Events delivers a message after every cache change. Sends never block, so
// consumers should re-read Entries rather than replay messages.
func (j *Journal) Events() <-chan ChangeMsg {
	return j.eventCh
}

// Notifications is the channel mutation outcomes are published to.
func (j *Journal) Notifications() *notify.Channel {
	return j.notes
}

// Load replaces the cache with the store's contents. On failure the cache is
// left as it was and nothing is published.
func (j *Journal) Load(ctx context.Context) error {
	j.cycle.Lock()
	defer j.cycle.Unlock()

	all, err := j.store.List(ctx)
	if err != nil {
		j.log.Error("load journal", zap.Error(err))
		return &SyncError{Err: err}
	}

	seen := make(map[string]struct{}, len(all))
	fresh := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if e == nil {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			j.log.Warn("duplicate entry in store", zap.String("id", e.ID))
			continue
		}
		seen[e.ID] = struct{}{}
		fresh = append(fresh, e.Clone())
	}

	j.mu.Lock()
	j.entries = fresh
	j.mu.Unlock()

	j.log.Debug("journal loaded", zap.Int("entries", len(fresh)))
	j.emit(ChangeMsg{Action: ChangeReload})
	return nil
}

// Reset empties the cache. It is used when the session ends.
func (j *Journal) Reset() {
	j.mu.Lock()
	j.entries = nil
	j.mu.Unlock()
	j.emit(ChangeMsg{Action: ChangeReload})
}

// Create stores a new entry and appends the stored copy to the cache.
func (j *Journal) Create(ctx context.Context, title, content string) (*entry.Entry, error) {
	if err := validate(title, content); err != nil {
		j.fail("create", "", MsgCreateFailed, err)
		return nil, err
	}

	j.cycle.RLock()
	created, err := j.store.Create(ctx, title, content)
	if err != nil {
		j.cycle.RUnlock()
		serr := &StoreError{Op: "create", Err: err}
		j.fail("create", "", MsgCreateFailed, serr)
		return nil, serr
	}

	j.mu.Lock()
	j.entries = append(j.entries, created.Clone())
	j.mu.Unlock()
	j.cycle.RUnlock()

	j.notes.Success(MsgCreated)
	j.emit(ChangeMsg{Action: ChangeCreate, ID: created.ID, Entry: created.Clone()})
	return created.Clone(), nil
}

// Update replaces the title and content of the entry with the given id.
func (j *Journal) Update(ctx context.Context, id, title, content string) error {
	if err := validate(title, content); err != nil {
		j.fail("update", id, MsgUpdateFailed, err)
		return err
	}
	return j.update(ctx, id, &title, &content)
}

// Patch is Update where a nil field keeps its cached value. The cached
// values are read while the entry is locked, so concurrent patches of
// different fields do not undo each other.
func (j *Journal) Patch(ctx context.Context, id string, title, content *string) error {
	return j.update(ctx, id, title, content)
}

func (j *Journal) update(ctx context.Context, id string, titleP, contentP *string) error {
	unlock, err := j.locks.Lock(ctx, id)
	if err != nil {
		serr := &StoreError{Op: "update", ID: id, Err: err}
		j.fail("update", id, MsgUpdateFailed, serr)
		return serr
	}
	defer unlock()
	j.cycle.RLock()
	defer j.cycle.RUnlock()

	cached, ok := j.Get(id)
	if !ok {
		serr := &StoreError{Op: "update", ID: id, Err: store.ErrNotFound}
		j.fail("update", id, MsgUpdateFailed, serr)
		return serr
	}
	title, content := cached.Title, cached.Content
	if titleP != nil {
		title = *titleP
	}
	if contentP != nil {
		content = *contentP
	}
	if err := validate(title, content); err != nil {
		j.fail("update", id, MsgUpdateFailed, err)
		return err
	}

	if err := j.store.Update(ctx, id, title, content); err != nil {
		serr := &StoreError{Op: "update", ID: id, Err: err}
		j.fail("update", id, MsgUpdateFailed, serr)
		return serr
	}

	var updated *entry.Entry
	j.mu.Lock()
	if i := j.indexLocked(id); i >= 0 {
		j.entries[i].Title = title
		j.entries[i].Content = content
		updated = j.entries[i].Clone()
	}
	j.mu.Unlock()

	j.notes.Success(MsgUpdated)
	j.emit(ChangeMsg{Action: ChangeUpdate, ID: id, Entry: updated})
	return nil
}

// Delete removes the entry with the given id.
func (j *Journal) Delete(ctx context.Context, id string) error {
	unlock, err := j.locks.Lock(ctx, id)
	if err != nil {
		serr := &StoreError{Op: "delete", ID: id, Err: err}
		j.fail("delete", id, MsgDeleteFailed, serr)
		return serr
	}
	defer unlock()
	j.cycle.RLock()
	defer j.cycle.RUnlock()

	if !j.has(id) {
		serr := &StoreError{Op: "delete", ID: id, Err: store.ErrNotFound}
		j.fail("delete", id, MsgDeleteFailed, serr)
		return serr
	}

	if err := j.store.Delete(ctx, id); err != nil {
		serr := &StoreError{Op: "delete", ID: id, Err: err}
		j.fail("delete", id, MsgDeleteFailed, serr)
		return serr
	}

	var removed *entry.Entry
	j.mu.Lock()
	if i := j.indexLocked(id); i >= 0 {
		removed = j.entries[i]
		j.entries = append(j.entries[:i:i], j.entries[i+1:]...)
	}
	j.mu.Unlock()

	j.notes.Success(MsgDeleted)
	j.emit(ChangeMsg{Action: ChangeDelete, ID: id, Entry: removed})
	return nil
}

// Entries returns copies of the cached entries in insertion order.
func (j *Journal) Entries() []*entry.Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]*entry.Entry, 0, len(j.entries))
	for _, e := range j.entries {
		out = append(out, e.Clone())
	}
	return out
}

// Get returns a copy of the cached entry with the given id.
func (j *Journal) Get(id string) (*entry.Entry, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if i := j.indexLocked(id); i >= 0 {
		return j.entries[i].Clone(), true
	}
	return nil, false
}

// Len returns the number of cached entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// View groups the cached entries by day.
func (j *Journal) View(opts ...viewmodel.Option) []viewmodel.Group {
	return viewmodel.BuildGroups(j.Entries(), opts...)
}

func (j *Journal) has(id string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.indexLocked(id) >= 0
}

func (j *Journal) indexLocked(id string) int {
	for i, e := range j.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (j *Journal) fail(op, id, message string, err error) {
	j.log.Error("journal mutation failed",
		zap.String("op", op),
		zap.String("id", id),
		zap.Error(err),
	)
	j.notes.Error(message)
}

func (j *Journal) emit(msg ChangeMsg) {
	select {
	case j.eventCh <- msg:
	default:
	}
}

func validate(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content"}
	}
	return nil
}
