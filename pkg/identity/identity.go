// Package identity signs users in and out and remembers the signed-in user
// between runs.
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password. The two cases are not distinguished.
	ErrInvalidCredentials = errors.New("identity: invalid email or password")
	// ErrNoAccounts is returned by SignIn when no accounts are configured.
	ErrNoAccounts = errors.New("identity: no accounts configured")
)

// Identity is the signed-in user.
type Identity struct {
	UID     string
	Email   string
	Expires time.Time
}

// Provider is the identity capability consumed by a session.
type Provider interface {
	// CurrentUser returns the signed-in user, or nil.
	CurrentUser() *Identity
	// Subscribe registers fn to run after every sign-in and sign-out. fn
	// receives nil on sign-out. The returned func removes the subscription.
	Subscribe(fn func(*Identity)) func()
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context) error
}
