package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/entry"
)

func newTestDisk(t *testing.T) *Disk {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)
	return p
}

func TestLoadRequiresBasePath(t *testing.T) {
	_, err := Load(testConfig{path: "  "})
	assert.Error(t, err)

	_, err = Load(nil)
	assert.Error(t, err)
}

func TestDiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newTestDisk(t)

	created, err := p.Create(ctx, "A", "x")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Created.IsZero())
	assert.Equal(t, time.UTC, created.Created.Location())

	all, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, "A", all[0].Title)
	assert.Equal(t, "x", all[0].Content)
	assert.True(t, created.Created.Equal(all[0].Created.Time))

	require.NoError(t, p.Update(ctx, created.ID, "B", "y"))
	all, err = p.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "B", all[0].Title)
	assert.Equal(t, "y", all[0].Content)
	assert.True(t, created.Created.Equal(all[0].Created.Time), "update must not touch the creation date")

	require.NoError(t, p.Delete(ctx, created.ID))
	all, err = p.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDiskMissingEntry(t *testing.T) {
	ctx := context.Background()
	p := newTestDisk(t)

	err := p.Update(ctx, "nope", "t", "c")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = p.Delete(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = p.Delete(ctx, "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDiskPreservesFeedback(t *testing.T) {
	ctx := context.Background()
	p := newTestDisk(t)

	seeded := &entry.Entry{
		ID:       "seed",
		Title:    "t",
		Content:  "c",
		Created:  entry.Timestamp{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		Feedback: "nice",
	}
	require.NoError(t, p.write(seeded))
	require.NoError(t, p.Update(ctx, "seed", "t2", "c2"))

	all, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "nice", all[0].Feedback)
	assert.Equal(t, "t2", all[0].Title)
}

func TestDiskUpdateKeepsWrittenDate(t *testing.T) {
	ctx := context.Background()
	p := newTestDisk(t)

	doc := `{"id":"abc","title":"t","content":"c","date":"2024-01-01T23:30:00-05:00"}`
	require.NoError(t, p.d.Write(toKey("abc"), []byte(doc)))
	require.NoError(t, p.Update(ctx, "abc", "t2", "c"))

	all, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "t2", all[0].Title)
	assert.Equal(t, "2024-01-01", all[0].Day())

	raw, err := p.d.Read(toKey("abc"))
	require.NoError(t, err)
	var stored struct {
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, "2024-01-01T23:30:00-05:00", stored.Date)
}

func TestDiskListOrder(t *testing.T) {
	ctx := context.Background()
	p := newTestDisk(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	stamps := []time.Time{base.Add(2 * time.Hour), base, base.Add(time.Hour)}
	for i, ts := range stamps {
		ts := ts
		p.now = func() time.Time { return ts }
		_, err := p.Create(ctx, string(rune('a'+i)), "c")
		require.NoError(t, err)
	}

	all, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].Title)
	assert.Equal(t, "c", all[1].Title)
	assert.Equal(t, "a", all[2].Title)
}

func TestDiskHonoursCancelledContext(t *testing.T) {
	p := newTestDisk(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Create(ctx, "t", "c")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeyTransforms(t *testing.T) {
	key := toKey("0b7c-11ee")
	pk := keyToPathTransform(key)
	assert.Equal(t, []string{"journals"}, pk.Path)
	assert.Equal(t, "0b7c-11ee", pk.FileName)
	assert.Equal(t, key, pathToKeyTransform(pk))
}
