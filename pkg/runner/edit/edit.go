package edit

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

// Prompter asks for a value, offering def as the starting text.
type Prompter func(label, def string) (string, error)

type Edit struct {
	ID string
	// Title and Content replace the current values when set. When both are
	// nil the user is prompted for each.
	Title   *string
	Content *string
	ShowID  bool

	Session *session.Session
	Prompt  Prompter
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not edit, no session")
	}
	if _, err := n.Session.RequireUser(); err != nil {
		return err
	}
	j := n.Session.Journal()
	e, ok := j.Get(n.ID)
	if !ok {
		return fmt.Errorf("%s: %w", n.ID, mcp.ErrEntryNotFound)
	}

	ed := editor.New(j)
	if err := ed.Open(e); err != nil {
		return err
	}
	if err := ed.EnterEdit(); err != nil {
		return err
	}

	title, content := n.Title, n.Content
	if title == nil && content == nil {
		prompt := n.Prompt
		if prompt == nil {
			prompt = promptLine
		}
		t, err := prompt("Title", e.Title)
		if err != nil {
			return err
		}
		c, err := prompt("Content", e.Content)
		if err != nil {
			return err
		}
		title, content = &t, &c
	}
	if title != nil {
		if err := ed.SetTitle(*title); err != nil {
			return err
		}
	}
	if content != nil {
		if err := ed.SetContent(*content); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	err := ed.Save(ctx)
	if note, ok := j.Notifications().Current(); ok {
		pp.Notification(note)
	}
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.Detail(ed.Entry())
	return nil
}

func promptLine(label, def string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
	}
	return p.Run()
}
