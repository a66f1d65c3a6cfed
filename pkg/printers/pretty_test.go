package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/notify"
	"tableflip.dev/diary/pkg/viewmodel"
)

func init() {
	color.NoColor = true
}

func sample(id, title string, ts time.Time) *entry.Entry {
	return &entry.Entry{ID: id, Title: title, Content: "content of " + title, Created: entry.Timestamp{Time: ts}}
}

func TestGroups(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	groups := viewmodel.BuildGroups([]*entry.Entry{
		sample("a", "Monday", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)),
		sample("b", "Tuesday", time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)),
	})
	pp.Groups(groups)

	out := buf.String()
	assert.Contains(t, out, "Tuesday, March 5, 2024 - 1 entry")
	assert.Contains(t, out, "Monday, March 4, 2024 - 1 entry")
	assert.Less(t, strings.Index(out, "March 5"), strings.Index(out, "March 4"))
}

func TestGroupsEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Groups(nil)
	assert.Contains(t, buf.String(), "none")
}

func TestEntriesShowID(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Entries(sample("abc-123", "Monday", time.Now()))
	assert.Contains(t, buf.String(), "abc-123")
	assert.Contains(t, buf.String(), "Monday")
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Table(sample("x1", "Alpha", time.Now()), sample("x2", "Beta", time.Now()))
	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "x1")
	assert.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "Beta"))
}

func TestDetail(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 20}
	e := sample("a", "Monday", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	e.Content = "one two three four five six seven eight nine ten"
	e.Feedback = "keep going"
	pp.Detail(e)

	out := buf.String()
	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "Feedback")
	assert.Contains(t, out, "  keep going")
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "one") || strings.Contains(line, "ten") {
			assert.LessOrEqual(t, len(line), 20, line)
		}
	}
}

func TestNotification(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Notification(notify.Notification{})
	assert.Empty(t, buf.String())

	pp.Notification(notify.Notification{Status: notify.StatusError, Message: "Failed to save journal."})
	assert.Equal(t, "Failed to save journal.\n", buf.String())
}

func TestMonth(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	then := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	groups := viewmodel.BuildGroups([]*entry.Entry{
		sample("a", "x", time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC)),
		sample("b", "y", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
	})
	pp.Month(then, groups)

	out := buf.String()
	assert.Contains(t, out, "February 2024")
	assert.Contains(t, out, "29")
	assert.NotContains(t, out, "30")
	assert.Equal(t, 29, DaysIn(then))
	assert.Equal(t, time.Thursday, StartDay(then))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]string{"a": "b"}))
	assert.Equal(t, "{\n  \"a\": \"b\"\n}\n", buf.String())
}
