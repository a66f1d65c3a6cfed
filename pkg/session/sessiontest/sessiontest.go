// Package sessiontest builds signed-in sessions over an in-memory store for
// tests of the front-ends.
package sessiontest

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/identity"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/notify"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/store"
)

const (
	Email    = "tester@example.com"
	Password = "secret"
)

// Fixture is a session plus the store behind it.
type Fixture struct {
	Session *session.Session
	Store   *store.Memory
}

// New returns a started session. When signedIn is true the test account is
// already signed in. Seed entries are stored before the journal loads.
func New(t testing.TB, signedIn bool, seed ...*entry.Entry) *Fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	p, err := identity.NewLocal(identity.LocalOptions{
		Accounts: map[string]string{Email: string(hash)},
		Secret:   "sessiontest",
	})
	if err != nil {
		t.Fatalf("identity: %v", err)
	}

	mem := store.NewMemory()
	for _, e := range seed {
		mem.Put(e)
	}
	n := notify.New(notify.WithTTL(time.Hour))
	t.Cleanup(n.Close)
	j := journal.New(mem, journal.WithNotifier(n))

	s := session.New(p, j)
	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(s.Stop)
	if signedIn {
		if _, err := s.SignIn(ctx, Email, Password); err != nil {
			t.Fatalf("sign in: %v", err)
		}
		n.Dismiss()
	}
	return &Fixture{Session: s, Store: mem}
}

// Entry builds a seed entry.
func Entry(id, title, content string, created time.Time) *entry.Entry {
	return &entry.Entry{ID: id, Title: title, Content: content, Created: entry.Timestamp{Time: created}}
}
