package journal

import (
	"context"
	"sync"
	"sync/atomic"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/store"
)

// fakeStore wraps a memory store with call counters and failure injection.
type fakeStore struct {
	*store.Memory

	calls atomic.Int32

	mu      sync.Mutex
	listErr error
	failOps map[string]error
	// gate, when set, blocks Update and Delete until a value is received.
	gate    chan struct{}
	entered chan string
	active  atomic.Int32
	maxSeen atomic.Int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{Memory: store.NewMemory(), failOps: map[string]error{}}
}

func (f *fakeStore) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOps[op] = err
}

func (f *fakeStore) err(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if op == "list" {
		return f.listErr
	}
	return f.failOps[op]
}

func (f *fakeStore) enter(id string) func() {
	n := f.active.Add(1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if f.entered != nil {
		f.entered <- id
	}
	if f.gate != nil {
		<-f.gate
	}
	return func() { f.active.Add(-1) }
}

func (f *fakeStore) List(ctx context.Context) ([]*entry.Entry, error) {
	f.calls.Add(1)
	if err := f.err("list"); err != nil {
		return nil, err
	}
	return f.Memory.List(ctx)
}

func (f *fakeStore) Create(ctx context.Context, title, content string) (*entry.Entry, error) {
	f.calls.Add(1)
	if err := f.err("create"); err != nil {
		return nil, err
	}
	return f.Memory.Create(ctx, title, content)
}

func (f *fakeStore) Update(ctx context.Context, id, title, content string) error {
	f.calls.Add(1)
	defer f.enter(id)()
	if err := f.err("update"); err != nil {
		return err
	}
	return f.Memory.Update(ctx, id, title, content)
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.calls.Add(1)
	defer f.enter(id)()
	if err := f.err("delete"); err != nil {
		return err
	}
	return f.Memory.Delete(ctx, id)
}

// slowListStore takes its List snapshot, reports it on listed and then waits
// for release before returning it.
type slowListStore struct {
	*store.Memory
	listed  chan struct{}
	release chan struct{}
}

func (s *slowListStore) List(ctx context.Context) ([]*entry.Entry, error) {
	all, err := s.Memory.List(ctx)
	s.listed <- struct{}{}
	<-s.release
	return all, err
}
