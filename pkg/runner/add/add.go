package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/runner/mcp"
	"tableflip.dev/diary/pkg/session"
)

type Add struct {
	Title   string
	Content string
	ShowID  bool
	JSON    bool

	Session *session.Session
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not add, no session")
	}
	if _, err := n.Session.RequireUser(); err != nil {
		return err
	}

	j := n.Session.Journal()
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	e, err := j.Create(ctx, n.Title, n.Content)
	if n.JSON {
		if err != nil {
			return err
		}
		return printers.JSON(n.Out, mcp.EntryDTOFor(e))
	}
	if note, ok := j.Notifications().Current(); ok {
		pp.Notification(note)
	}
	if err != nil {
		return err
	}
	pp.NewLine()
	pp.Detail(e)
	return nil
}
