package commands

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, name := range []string{"login", "logout", "whoami", "passwd", "list", "calendar", "add", "show", "edit", "delete", "ui", "mcp", "version"} {
		c, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestVersion(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--short"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "dev")
}

func TestListNotSignedIn(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "diary.yaml")
	cfg := strings.Join([]string{
		"path: " + filepath.Join(dir, "db"),
		"session: " + filepath.Join(dir, "session.jwt"),
		"key: " + filepath.Join(dir, "signing.key"),
		"log: " + filepath.Join(dir, "diary.log"),
	}, "\n")
	require.NoError(t, os.WriteFile(file, []byte(cfg), 0o600))
	t.Cleanup(func() { co.File = "" })

	root := New()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", file, "list"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestListenURL(t *testing.T) {
	a := &net.TCPAddr{IP: net.IPv4zero, Port: 8123}
	assert.Equal(t, "http://127.0.0.1:8123/mcp", listenURL("0.0.0.0", "/mcp", false, a))
	assert.Equal(t, "https://example.test:443/x", listenURL("example.test", "/x", true, &net.TCPAddr{Port: 443}))

	v6 := &net.TCPAddr{IP: net.ParseIP("::1"), Port: 9}
	assert.Equal(t, "http://[::1]:9/mcp", listenURL("::1", "/mcp", false, v6))
}
