package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/runner/mcp"
	"tableflip.dev/diary/pkg/session"
)

type Show struct {
	ID     string
	ShowID bool
	JSON   bool
	Width  int

	Session *session.Session
	Out     io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not show, no session")
	}
	if _, err := n.Session.RequireUser(); err != nil {
		return err
	}
	j := n.Session.Journal()
	if n.JSON {
		dto, err := mcp.NewService(j).EntryByID(ctx, n.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", n.ID, err)
		}
		return printers.JSON(n.Out, dto)
	}
	e, ok := j.Get(n.ID)
	if !ok {
		return fmt.Errorf("%s: %w", n.ID, mcp.ErrEntryNotFound)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Width: n.Width, Out: n.Out}
	pp.Detail(e)
	return nil
}
