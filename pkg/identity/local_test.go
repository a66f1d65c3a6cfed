package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "alice@example.com"
	testPassword = "correct horse"
)

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestLocal(t *testing.T, dir string, now func() time.Time) *Local {
	t.Helper()
	l, err := NewLocal(LocalOptions{
		Accounts:    map[string]string{"Alice@Example.com": testHash(t, testPassword)},
		SessionPath: filepath.Join(dir, "session.jwt"),
		KeyPath:     filepath.Join(dir, "signing.key"),
		TTL:         time.Hour,
		Now:         now,
	})
	require.NoError(t, err)
	return l
}

func TestSignInPersistsSession(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l := newTestLocal(t, dir, nil)
	assert.Nil(t, l.CurrentUser())

	id, err := l.SignIn(ctx, " ALICE@example.com ", testPassword)
	require.NoError(t, err)
	assert.Equal(t, testEmail, id.Email)
	assert.Equal(t, uidFor(testEmail), id.UID)
	assert.Equal(t, testEmail, l.CurrentUser().Email)

	info, err := os.Stat(filepath.Join(dir, "session.jwt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A new provider over the same files restores the user.
	again := newTestLocal(t, dir, nil)
	require.NotNil(t, again.CurrentUser())
	assert.Equal(t, id.UID, again.CurrentUser().UID)
}

func TestSignInRejected(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t, t.TempDir(), nil)

	_, err := l.SignIn(ctx, testEmail, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = l.SignIn(ctx, "bob@example.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, l.CurrentUser())
}

func TestSignInWithoutAccounts(t *testing.T) {
	l, err := NewLocal(LocalOptions{Secret: "s"})
	require.NoError(t, err)
	_, err = l.SignIn(context.Background(), testEmail, testPassword)
	assert.ErrorIs(t, err, ErrNoAccounts)
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l := newTestLocal(t, dir, nil)
	_, err := l.SignIn(ctx, testEmail, testPassword)
	require.NoError(t, err)

	require.NoError(t, l.SignOut(ctx))
	assert.Nil(t, l.CurrentUser())
	_, err = os.Stat(filepath.Join(dir, "session.jwt"))
	assert.True(t, os.IsNotExist(err))

	// Signing out twice is fine.
	require.NoError(t, l.SignOut(ctx))
}

func TestExpiredSessionDiscarded(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	start := time.Now()
	l := newTestLocal(t, dir, func() time.Time { return start })
	_, err := l.SignIn(ctx, testEmail, testPassword)
	require.NoError(t, err)

	later := newTestLocal(t, dir, func() time.Time { return start.Add(2 * time.Hour) })
	assert.Nil(t, later.CurrentUser())
	_, err = os.Stat(filepath.Join(dir, "session.jwt"))
	assert.True(t, os.IsNotExist(err), "expired token should be removed")
}

func TestTamperedSessionDiscarded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.jwt"), []byte("not-a-token"), 0o600))
	l := newTestLocal(t, dir, nil)
	assert.Nil(t, l.CurrentUser())
}

func TestSessionForRemovedAccountDiscarded(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l := newTestLocal(t, dir, nil)
	_, err := l.SignIn(ctx, testEmail, testPassword)
	require.NoError(t, err)

	other, err := NewLocal(LocalOptions{
		Accounts:    map[string]string{"bob@example.com": testHash(t, "pw")},
		SessionPath: filepath.Join(dir, "session.jwt"),
		KeyPath:     filepath.Join(dir, "signing.key"),
	})
	require.NoError(t, err)
	assert.Nil(t, other.CurrentUser())
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t, t.TempDir(), nil)

	var seen []*Identity
	unsubscribe := l.Subscribe(func(id *Identity) { seen = append(seen, id) })

	_, err := l.SignIn(ctx, testEmail, testPassword)
	require.NoError(t, err)
	require.NoError(t, l.SignOut(ctx))

	require.Len(t, seen, 2)
	require.NotNil(t, seen[0])
	assert.Equal(t, testEmail, seen[0].Email)
	assert.Nil(t, seen[1])

	unsubscribe()
	unsubscribe()
	_, err = l.SignIn(ctx, testEmail, testPassword)
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}

func TestSigningKeyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys", "signing.key")

	first, err := signingKey("", path)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := signingKey("", path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = signingKey("", "")
	assert.Error(t, err)

	secret, err := signingKey("inline", path)
	require.NoError(t, err)
	assert.Equal(t, []byte("inline"), secret)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.True(t, checkPassword(hash, "pw"))
	assert.False(t, checkPassword(hash, "nope"))

	_, err = HashPassword("")
	assert.Error(t, err)
}
