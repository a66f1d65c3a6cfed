// Package editor is the state machine behind the entry detail pane: an entry
// is opened for viewing, switched into editing with a draft, and either
// saved, cancelled or deleted.
package editor

import (
	"context"
	"errors"

	"tableflip.dev/diary/pkg/entry"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed in the
	// current state.
	ErrInvalidTransition = errors.New("editor: invalid transition")
	// ErrNoEntry is returned when no entry is open.
	ErrNoEntry = errors.New("editor: no entry open")
)

// State of the editor.
type State int

const (
	Closed State = iota
	Viewing
	Editing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return "closed"
	}
}

// Mutator commits edits. *journal.Journal satisfies it.
type Mutator interface {
	Update(ctx context.Context, id, title, content string) error
	Delete(ctx context.Context, id string) error
}

// Draft holds the values being edited.
type Draft struct {
	Title   string
	Content string
}

// Editor is not safe for concurrent use; front-ends drive it from a single
// goroutine.
type Editor struct {
	m       Mutator
	state   State
	current *entry.Entry
	draft   Draft
}

// New returns a closed editor.
func New(m Mutator) *Editor {
	return &Editor{m: m}
}

func (e *Editor) State() State {
	return e.state
}

// Entry returns a copy of the displayed entry, or nil when closed.
func (e *Editor) Entry() *entry.Entry {
	return e.current.Clone()
}

// Draft returns the draft. It is only meaningful while editing.
func (e *Editor) Draft() Draft {
	return e.draft
}

// Open displays en, discarding any edit in progress.
func (e *Editor) Open(en *entry.Entry) error {
	if en == nil {
		return ErrNoEntry
	}
	e.current = en.Clone()
	e.draft = Draft{}
	e.state = Viewing
	return nil
}

// EnterEdit seeds the draft from the displayed entry.
func (e *Editor) EnterEdit() error {
	if e.state != Viewing {
		return e.invalid()
	}
	e.draft = Draft{Title: e.current.Title, Content: e.current.Content}
	e.state = Editing
	return nil
}

func (e *Editor) SetTitle(title string) error {
	if e.state != Editing {
		return e.invalid()
	}
	e.draft.Title = title
	return nil
}

func (e *Editor) SetContent(content string) error {
	if e.state != Editing {
		return e.invalid()
	}
	e.draft.Content = content
	return nil
}

// Save commits the draft. On failure the editor stays in Editing with the
// draft untouched.
func (e *Editor) Save(ctx context.Context) error {
	if e.state != Editing {
		return e.invalid()
	}
	if err := e.m.Update(ctx, e.current.ID, e.draft.Title, e.draft.Content); err != nil {
		return err
	}
	e.current.Title = e.draft.Title
	e.current.Content = e.draft.Content
	e.draft = Draft{}
	e.state = Viewing
	return nil
}

// Cancel drops the draft and returns to viewing.
func (e *Editor) Cancel() error {
	if e.state != Editing {
		return e.invalid()
	}
	e.draft = Draft{}
	e.state = Viewing
	return nil
}

// Delete removes the displayed entry and closes the editor. On failure the
// editor stays in Viewing.
func (e *Editor) Delete(ctx context.Context) error {
	if e.state != Viewing {
		return e.invalid()
	}
	if err := e.m.Delete(ctx, e.current.ID); err != nil {
		return err
	}
	e.Close()
	return nil
}

// Close deselects the entry.
func (e *Editor) Close() {
	e.current = nil
	e.draft = Draft{}
	e.state = Closed
}

func (e *Editor) invalid() error {
	if e.state == Closed {
		return ErrNoEntry
	}
	return ErrInvalidTransition
}
