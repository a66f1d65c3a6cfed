// Package session ties the journal to the signed-in user: the journal is
// loaded when a user signs in and emptied when they sign out.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/identity"
	"tableflip.dev/diary/pkg/journal"
)

// ErrNotSignedIn is returned when an operation needs a user and there is none.
var ErrNotSignedIn = errors.New("session: not signed in")

// Messages published for sign-in attempts.
const (
	MsgSignedIn     = "Successfully logged in."
	MsgSignInFailed = "Login has failed."
)

const defaultLoadTimeout = 30 * time.Second

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// Session is the lifecycle of one authenticated user.
type Session struct {
	provider    identity.Provider
	journal     *journal.Journal
	log         *zap.Logger
	loadTimeout time.Duration

	mu          sync.Mutex
	user        *identity.Identity
	unsubscribe func()
	started     bool
}

// New returns an unstarted session.
func New(p identity.Provider, j *journal.Journal, opts ...Option) *Session {
	s := &Session{
		provider:    p,
		journal:     j,
		log:         zap.NewNop(),
		loadTimeout: defaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start subscribes to identity changes and, if a user is already signed in,
// loads the journal. A load failure is logged and does not fail Start.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.unsubscribe = s.provider.Subscribe(s.onChange)
	s.mu.Unlock()

	if u := s.provider.CurrentUser(); u != nil {
		s.setUser(u)
		_ = s.journal.Load(ctx)
	}
	return nil
}

// Stop unsubscribes and empties the journal.
func (s *Session) Stop() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.started = false
	s.user = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	s.journal.Reset()
}

// SignIn authenticates and reports the outcome on the journal's notification
// channel.
func (s *Session) SignIn(ctx context.Context, email, password string) (*identity.Identity, error) {
	u, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.log.Info("sign-in failed", zap.Error(err))
		s.journal.Notifications().Error(MsgSignInFailed)
		return nil, err
	}
	s.journal.Notifications().Success(MsgSignedIn)
	return u, nil
}

// SignOut ends the session for the current user.
func (s *Session) SignOut(ctx context.Context) error {
	return s.provider.SignOut(ctx)
}

// User returns the signed-in user, or nil.
func (s *Session) User() *identity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// RequireUser returns the signed-in user or ErrNotSignedIn.
func (s *Session) RequireUser() (*identity.Identity, error) {
	if u := s.User(); u != nil {
		return u, nil
	}
	return nil, ErrNotSignedIn
}

// Journal returns the session's journal.
func (s *Session) Journal() *journal.Journal {
	return s.journal
}

func (s *Session) setUser(u *identity.Identity) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *Session) onChange(u *identity.Identity) {
	s.setUser(u)
	if u == nil {
		s.log.Debug("session ended")
		s.journal.Reset()
		return
	}
	s.log.Debug("session started", zap.String("uid", u.UID))
	ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
	defer cancel()
	_ = s.journal.Load(ctx)
}
