package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/entry"
)

const collectionName = "journals"

// Option configures a Disk store.
type Option func(*Disk)

// WithLogger sets the logger used for watcher diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(d *Disk) {
		if log != nil {
			d.log = log
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (*Disk, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := strings.TrimSpace(cfg.BasePath())
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &Disk{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Disk is a document store keeping one JSON document per entry.
type Disk struct {
	// mu guards read-modify-write cycles on documents.
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
	log      *zap.Logger
}

var _ Persistence = (*Disk)(nil)

func (p *Disk) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	e.ID = keyToPathTransform(key).FileName
	return e, nil
}

func (p *Disk) write(e *entry.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", e.ID, err)
	}
	return p.d.Write(toKey(e.ID), data)
}

func (p *Disk) List(ctx context.Context) ([]*entry.Entry, error) {
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !isEntryKey(key) {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			return nil, err
		}
		all = append(all, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortEntries(all)
	return all, nil
}

func (p *Disk) Create(ctx context.Context, title, content string) (*entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e := &entry.Entry{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Created: entry.Timestamp{Time: p.now().UTC()},
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.write(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Disk) Update(ctx context.Context, id, title, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := toKey(id)
	if id == "" || !p.d.Has(key) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e, err := p.read(key)
	if err != nil {
		return err
	}
	e.Title = title
	e.Content = content
	return p.write(e)
}

func (p *Disk) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := toKey(id)
	if id == "" || !p.d.Has(key) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.d.Erase(key)
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := entries[i]
		right := entries[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	if len(parts) < 2 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     parts[:1],
		FileName: strings.Join(parts[1:], "-"),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `journals-id`
func toKey(id string) string {
	return fmt.Sprintf("%s-%s", collectionName, id)
}

func isEntryKey(key string) bool {
	return strings.HasPrefix(key, collectionName+"-")
}
