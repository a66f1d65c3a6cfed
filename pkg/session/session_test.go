package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/identity"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/notify"
	"tableflip.dev/diary/pkg/store"
)

// fakeProvider accepts a single password.
type fakeProvider struct {
	mu        sync.Mutex
	current   *identity.Identity
	listeners []func(*identity.Identity)
	password  string
}

func (f *fakeProvider) CurrentUser() *identity.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeProvider) Subscribe(fn func(*identity.Identity)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.listeners)
	f.listeners = append(f.listeners, fn)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.listeners[i] = nil
	}
}

func (f *fakeProvider) set(id *identity.Identity) {
	f.mu.Lock()
	f.current = id
	fns := append([]func(*identity.Identity){}, f.listeners...)
	f.mu.Unlock()
	for _, fn := range fns {
		if fn != nil {
			fn(id)
		}
	}
}

func (f *fakeProvider) SignIn(_ context.Context, email, password string) (*identity.Identity, error) {
	if password != f.password {
		return nil, identity.ErrInvalidCredentials
	}
	id := &identity.Identity{UID: "u-1", Email: email}
	f.set(id)
	return id, nil
}

func (f *fakeProvider) SignOut(context.Context) error {
	f.set(nil)
	return nil
}

func seeded() *store.Memory {
	m := store.NewMemory()
	m.Put(&entry.Entry{ID: "1", Title: "t", Content: "c", Created: entry.Timestamp{Time: time.Unix(1, 0).UTC()}})
	return m
}

func newJournal(t *testing.T, p store.Persistence) *journal.Journal {
	n := notify.New(notify.WithTTL(time.Hour))
	t.Cleanup(n.Close)
	return journal.New(p, journal.WithNotifier(n))
}

func TestStartLoadsForRestoredUser(t *testing.T) {
	p := &fakeProvider{current: &identity.Identity{UID: "u-1"}}
	j := newJournal(t, seeded())
	s := New(p, j)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()
	assert.Equal(t, 1, j.Len())
	u, err := s.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.UID)
}

func TestStartWithoutUser(t *testing.T) {
	j := newJournal(t, seeded())
	s := New(&fakeProvider{}, j)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Zero(t, j.Len())
	_, err := s.RequireUser()
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestSignInAndOut(t *testing.T) {
	ctx := context.Background()
	p := &fakeProvider{password: "pw"}
	j := newJournal(t, seeded())
	s := New(p, j)
	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	_, err := s.SignIn(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, 1, j.Len())
	n, ok := j.Notifications().Current()
	require.True(t, ok)
	assert.Equal(t, MsgSignedIn, n.Message)
	assert.NotNil(t, s.User())

	require.NoError(t, s.SignOut(ctx))
	assert.Zero(t, j.Len())
	assert.Nil(t, s.User())
}

func TestSignInFailure(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t, seeded())
	s := New(&fakeProvider{password: "pw"}, j)
	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	_, err := s.SignIn(ctx, "a@example.com", "wrong")
	assert.True(t, errors.Is(err, identity.ErrInvalidCredentials))
	n, ok := j.Notifications().Current()
	require.True(t, ok)
	assert.Equal(t, notify.StatusError, n.Status)
	assert.Equal(t, MsgSignInFailed, n.Message)
	assert.Zero(t, j.Len())
}

func TestStopUnsubscribes(t *testing.T) {
	ctx := context.Background()
	p := &fakeProvider{password: "pw"}
	j := newJournal(t, seeded())
	s := New(p, j)
	require.NoError(t, s.Start(ctx))
	s.Stop()

	_, err := p.SignIn(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	assert.Zero(t, j.Len(), "stopped session must not load")
}

type failingList struct {
	*store.Memory
}

func (failingList) List(context.Context) ([]*entry.Entry, error) {
	return nil, errors.New("offline")
}

func TestStartLoadFailureIsQuiet(t *testing.T) {
	p := &fakeProvider{current: &identity.Identity{UID: "u-1"}}
	j := newJournal(t, failingList{store.NewMemory()})
	s := New(p, j)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	_, shown := j.Notifications().Current()
	assert.False(t, shown)
}
