package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".diary.yaml")
	body := `
path: ` + filepath.Join(dir, "db") + `
session_ttl: 2h
debug: true
accounts:
  Alice@Example.com: "$2a$10$hash"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "db"), c.BasePath())
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
	assert.True(t, c.Debug)
	assert.Equal(t, "$2a$10$hash", c.Accounts["alice@example.com"])
	assert.Equal(t, path, c.File)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(PathEnv, t.TempDir())
	t.Setenv("DIARY_PATH", "")
	t.Setenv("DIARY_SECRET", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	if _, err := os.Stat(filepath.Join(wd, ".diary.yaml")); err == nil {
		t.Skip("a .diary.yaml in the working directory would override defaults")
	}
	home, err := homedir.Dir()
	require.NoError(t, err)
	if _, err := os.Stat(filepath.Join(home, ".diary.yaml")); err == nil {
		t.Skip("a .diary.yaml in $HOME would override defaults")
	}

	c, err := Load()
	require.NoError(t, err)

	want, err := homedir.Expand(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, want, c.Path)
	assert.Equal(t, DefaultSessionTTL, c.SessionTTL)
	assert.Empty(t, c.Accounts)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(PathEnv, dir)
	t.Setenv("DIARY_PATH", filepath.Join(dir, "elsewhere"))
	t.Setenv("DIARY_SECRET", "s3cret")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "elsewhere"), c.Path)
	assert.Equal(t, "s3cret", c.Secret)
}

func TestLoadBadTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".diary.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session_ttl: soon\n"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
