package show

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/runner/mcp"
	"tableflip.dev/diary/pkg/session/sessiontest"
)

func init() {
	color.NoColor = true
}

func TestShow(t *testing.T) {
	e := sessiontest.Entry("a", "Monday", "went for a long run", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	e.Feedback = "great"
	f := sessiontest.New(t, true, e)

	var out bytes.Buffer
	require.NoError(t, (&Show{Session: f.Session, ID: "a", ShowID: true, Out: &out}).Do(context.Background()))
	text := out.String()
	assert.Contains(t, text, "Monday")
	assert.Contains(t, text, "went for a long run")
	assert.Contains(t, text, "great")

	out.Reset()
	require.NoError(t, (&Show{Session: f.Session, ID: "a", JSON: true, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), `"created": "2024-03-04T09:00:00Z"`)
}

func TestShowMissing(t *testing.T) {
	f := sessiontest.New(t, true)
	err := (&Show{Session: f.Session, ID: "x", Out: &bytes.Buffer{}}).Do(context.Background())
	assert.ErrorIs(t, err, mcp.ErrEntryNotFound)
	err = (&Show{Session: f.Session, ID: "x", JSON: true, Out: &bytes.Buffer{}}).Do(context.Background())
	assert.ErrorIs(t, err, mcp.ErrEntryNotFound)
}
