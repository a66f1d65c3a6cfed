package add

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/session/sessiontest"
)

func init() {
	color.NoColor = true
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	f := sessiontest.New(t, true)
	var out bytes.Buffer

	require.NoError(t, (&Add{Session: f.Session, Title: "A", Content: "x", Out: &out}).Do(ctx))
	assert.Contains(t, out.String(), journal.MsgCreated)
	assert.Contains(t, out.String(), "A")

	stored, err := f.Store.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "x", stored[0].Content)
}

func TestAddEmptyTitle(t *testing.T) {
	ctx := context.Background()
	f := sessiontest.New(t, true)
	var out bytes.Buffer

	err := (&Add{Session: f.Session, Content: "x", Out: &out}).Do(ctx)
	assert.True(t, journal.IsValidation(err))
	assert.Contains(t, out.String(), journal.MsgCreateFailed)

	stored, err := f.Store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestAddJSON(t *testing.T) {
	f := sessiontest.New(t, true)
	var out bytes.Buffer
	require.NoError(t, (&Add{Session: f.Session, Title: "A", Content: "x", JSON: true, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), `"title": "A"`)
	assert.NotContains(t, out.String(), journal.MsgCreated)
}
