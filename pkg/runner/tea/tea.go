// Package teaui is the Bubble Tea front-end: a login form, the day-grouped
// entry list with search and sort, a compose form and the entry editor.
package teaui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/store"
)

// UI runs the terminal interface until the user quits.
type UI struct {
	Session *session.Session
	// Watcher, when set, reloads the journal after other processes change
	// the store.
	Watcher store.Watcher
	Logger  *zap.Logger
}

func (u *UI) Do(ctx context.Context) error {
	if u.Session == nil {
		return errors.New("ui requires a session")
	}
	log := u.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []Option{WithContext(ctx), WithLogger(log)}
	if u.Watcher != nil {
		events, err := u.Watcher.Watch(ctx)
		if err != nil {
			log.Warn("store watch unavailable", zap.Error(err))
		} else {
			opts = append(opts, WithStoreEvents(events))
		}
	}

	p := tea.NewProgram(New(u.Session, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
