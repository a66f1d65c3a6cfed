package options

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/viewmodel"
)

func TestEntryChanged(t *testing.T) {
	fs := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	o := &EntryOptions{}
	AddEntryArgs(fs, o)
	require.NoError(t, fs.Parse([]string{"--content", ""}))

	title, content := o.Changed()
	assert.Nil(t, title)
	require.NotNil(t, content)
	assert.Equal(t, "", *content)
}

func TestListResolve(t *testing.T) {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	o := &ListOptions{}
	AddListArgs(fs, o)
	require.NoError(t, fs.Parse(nil))

	s, err := o.Resolve()
	require.NoError(t, err)
	assert.Equal(t, viewmodel.SortNewest, s)

	require.NoError(t, fs.Parse([]string{"-s", "title", "-q", "run"}))
	s, err = o.Resolve()
	require.NoError(t, err)
	assert.Equal(t, viewmodel.SortTitle, s)
	assert.Equal(t, "run", o.Query)

	o.Sort = "sideways"
	_, err = o.Resolve()
	assert.Error(t, err)
}

func TestListSince(t *testing.T) {
	o := &ListOptions{}
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	since, err := o.SinceTime(now)
	require.NoError(t, err)
	assert.True(t, since.IsZero())

	o.Since = "2d"
	since, err = o.SinceTime(now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-48*time.Hour), since)

	o.Since = "soon"
	_, err = o.SinceTime(now)
	assert.Error(t, err)
}

func TestHandleError(t *testing.T) {
	o := &OutputOptions{}
	err := errors.New("boom")
	assert.Equal(t, err, o.HandleError(err))

	o.JSON = true
	assert.NoError(t, o.HandleError(err))
	assert.NoError(t, o.HandleError(nil))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "aaa\nbbb", Wrap("aaa   bbb", 4))
}
