package entry

import (
	"fmt"
	"strings"
	"time"
)

// New returns an entry stamped with the current time. Stores assign the ID.
func New(title, content string) *Entry {
	return &Entry{
		Title:   title,
		Content: content,
		Created: Timestamp{Time: time.Now().UTC()},
	}
}

// Entry is a single journal record.
type Entry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Created  Timestamp `json:"date"`
	Feedback string    `json:"feedback,omitempty"`
}

// Day returns the calendar day key the entry is grouped under.
func (e *Entry) Day() string {
	return e.Created.DayKey()
}

// Matches reports whether query is a substring of the title or the content.
// The match is case-sensitive and an empty query matches everything.
func (e *Entry) Matches(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(e.Title, query) || strings.Contains(e.Content, query)
}

// Clone returns a copy that shares nothing with e.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s  %s", e.Created.Display(), e.Title)
}
