package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const defaultTTL = 720 * time.Hour

// LocalOptions configure a Local provider.
type LocalOptions struct {
	// Accounts maps email to bcrypt hash.
	Accounts map[string]string
	// SessionPath is where the signed session token is kept.
	SessionPath string
	// Secret signs session tokens. When empty the key is read from KeyPath,
	// which is created on first use.
	Secret  string
	KeyPath string
	// TTL is how long a sign-in lasts.
	TTL    time.Duration
	Logger *zap.Logger
	Now    func() time.Time
}

// Claims are the session token claims. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Local checks passwords against configured accounts and persists the
// session as an HS256 token.
type Local struct {
	accounts    map[string]string
	sessionPath string
	key         []byte
	ttl         time.Duration
	log         *zap.Logger
	now         func() time.Time

	mu        sync.Mutex
	current   *Identity
	listeners map[int]func(*Identity)
	nextID    int
}

var _ Provider = (*Local)(nil)

// NewLocal builds the provider and restores a previous session when its token
// is still valid.
func NewLocal(o LocalOptions) (*Local, error) {
	l := &Local{
		accounts:    make(map[string]string, len(o.Accounts)),
		sessionPath: o.SessionPath,
		ttl:         o.TTL,
		log:         o.Logger,
		now:         o.Now,
		listeners:   make(map[int]func(*Identity)),
	}
	if l.ttl <= 0 {
		l.ttl = defaultTTL
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	if l.now == nil {
		l.now = time.Now
	}
	for email, hash := range o.Accounts {
		l.accounts[NormalizeEmail(email)] = hash
	}

	key, err := signingKey(o.Secret, o.KeyPath)
	if err != nil {
		return nil, err
	}
	l.key = key

	l.current = l.restore()
	return l, nil
}

func (l *Local) CurrentUser() *Identity {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return nil
	}
	c := *l.current
	return &c
}

func (l *Local) Subscribe(fn func(*Identity)) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.listeners, id)
			l.mu.Unlock()
		})
	}
}

func (l *Local) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(l.accounts) == 0 {
		return nil, ErrNoAccounts
	}
	email = NormalizeEmail(email)
	hash, ok := l.accounts[email]
	if !ok || !checkPassword(hash, password) {
		l.log.Info("sign-in rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	now := l.now()
	id := &Identity{
		UID:     uidFor(email),
		Email:   email,
		Expires: now.Add(l.ttl).Truncate(time.Second),
	}
	token, err := l.sign(id, now)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(l.sessionPath, []byte(token)); err != nil {
		return nil, fmt.Errorf("identity: save session: %w", err)
	}

	l.log.Info("signed in", zap.String("email", email), zap.String("uid", id.UID))
	l.set(id)
	c := *id
	return &c, nil
}

func (l *Local) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.sessionPath != "" {
		if err := os.Remove(l.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("identity: remove session: %w", err)
		}
	}
	l.log.Info("signed out")
	l.set(nil)
	return nil
}

func (l *Local) set(id *Identity) {
	l.mu.Lock()
	l.current = id
	fns := make([]func(*Identity), 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		if id == nil {
			fn(nil)
			continue
		}
		c := *id
		fn(&c)
	}
}

func (l *Local) sign(id *Identity, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(id.Expires),
		},
		Email: id.Email,
	})
	signed, err := token.SignedString(l.key)
	if err != nil {
		return "", fmt.Errorf("identity: sign session: %w", err)
	}
	return signed, nil
}

func (l *Local) parse(raw string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return l.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(l.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("identity: invalid session token")
	}
	email := NormalizeEmail(claims.Email)
	if _, ok := l.accounts[email]; !ok {
		return nil, fmt.Errorf("identity: account %s no longer configured", email)
	}
	if claims.Subject != uidFor(email) {
		return nil, errors.New("identity: session subject mismatch")
	}
	return &Identity{UID: claims.Subject, Email: email, Expires: claims.ExpiresAt.Time}, nil
}

// restore loads the persisted session. Unusable tokens are removed.
func (l *Local) restore() *Identity {
	if l.sessionPath == "" {
		return nil
	}
	raw, err := os.ReadFile(l.sessionPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.log.Warn("read session", zap.Error(err))
		}
		return nil
	}
	id, err := l.parse(strings.TrimSpace(string(raw)))
	if err != nil {
		l.log.Info("discarding session", zap.Error(err))
		if err := os.Remove(l.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			l.log.Warn("remove session", zap.Error(err))
		}
		return nil
	}
	return id
}

func signingKey(secret, keyPath string) ([]byte, error) {
	if secret != "" {
		return []byte(secret), nil
	}
	if keyPath == "" {
		return nil, errors.New("identity: a secret or key path is required")
	}
	raw, err := os.ReadFile(keyPath)
	if err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil || len(key) == 0 {
			return nil, fmt.Errorf("identity: corrupt key file (delete %s to regenerate)", keyPath)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("identity: read key: %w", err)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("identity: generate key: %w", err)
	}
	if err := writeFileAtomic(keyPath, []byte(hex.EncodeToString(key))); err != nil {
		return nil, fmt.Errorf("identity: save key: %w", err)
	}
	return key, nil
}

// writeFileAtomic writes data to path with 0600 permissions through a
// temporary file.
func writeFileAtomic(path string, data []byte) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
