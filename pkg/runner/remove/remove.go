package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"

	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/runner/mcp"
	"tableflip.dev/diary/pkg/session"
)

// ErrAborted is returned when the user declines the confirmation.
var ErrAborted = errors.New("delete aborted")

// Confirmer asks a yes/no question.
type Confirmer func(label string) (bool, error)

type Remove struct {
	ID  string
	Yes bool

	Session *session.Session
	Confirm Confirmer
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not delete, no session")
	}
	if _, err := n.Session.RequireUser(); err != nil {
		return err
	}
	j := n.Session.Journal()
	e, ok := j.Get(n.ID)
	if !ok {
		return fmt.Errorf("%s: %w", n.ID, mcp.ErrEntryNotFound)
	}

	if !n.Yes {
		confirm := n.Confirm
		if confirm == nil {
			confirm = promptConfirm
		}
		ok, err := confirm(fmt.Sprintf("Delete %q", e.Title))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	ed := editor.New(j)
	if err := ed.Open(e); err != nil {
		return err
	}
	err := ed.Delete(ctx)
	pp := printers.PrettyPrint{Out: n.Out}
	if note, ok := j.Notifications().Current(); ok {
		pp.Notification(note)
	}
	return err
}

func promptConfirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
