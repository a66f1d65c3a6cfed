package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/notify"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/store"
)

type (
	journalEventMsg struct{ journal.ChangeMsg }
	noteMsg         struct{ notify.Notification }
	storeEventMsg   struct{ store.Event }

	reloadedMsg  struct{ err error }
	signedInMsg  struct{ err error }
	signedOutMsg struct{ err error }
	createdMsg   struct {
		entry *entry.Entry
		err   error
	}
)

// listenJournal blocks until the journal reports a cache change.
func listenJournal(ch <-chan journal.ChangeMsg) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return journalEventMsg{ev}
	}
}

func listenNotes(ch <-chan notify.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noteMsg{n}
	}
}

// listenStore blocks until another process changes the store.
func listenStore(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeEventMsg{ev}
	}
}

func reloadCmd(ctx context.Context, j *journal.Journal) tea.Cmd {
	return func() tea.Msg {
		return reloadedMsg{err: j.Load(ctx)}
	}
}

func signInCmd(ctx context.Context, s *session.Session, email, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := s.SignIn(ctx, email, password)
		return signedInMsg{err: err}
	}
}

func signOutCmd(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return signedOutMsg{err: s.SignOut(ctx)}
	}
}

func createCmd(ctx context.Context, j *journal.Journal, title, content string) tea.Cmd {
	return func() tea.Msg {
		e, err := j.Create(ctx, title, content)
		return createdMsg{entry: e, err: err}
	}
}
