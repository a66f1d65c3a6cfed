package list

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/runner/mcp"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/viewmodel"
)

type List struct {
	ShowID bool
	JSON   bool
	Sort   viewmodel.Sort
	Query  string
	// Since hides entries created before it when set.
	Since time.Time

	Session *session.Session
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not list, no session")
	}
	if _, err := n.Session.RequireUser(); err != nil {
		return err
	}

	svc := mcp.NewService(n.Session.Journal())
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	sortBy := n.Sort
	if sortBy == "" {
		sortBy = viewmodel.SortNewest
	}
	opts := mcp.ListOptions{Sort: sortBy, Query: n.Query, Since: n.Since}

	if n.JSON {
		if sortBy.Grouped() {
			days, err := svc.Days(ctx, opts)
			if err != nil {
				return err
			}
			return printers.JSON(n.Out, days)
		}
		entries, err := svc.ListEntries(ctx, opts)
		if err != nil {
			return err
		}
		return printers.JSON(n.Out, entries)
	}

	j := n.Session.Journal()
	view := []viewmodel.Option{
		viewmodel.WithOrder(sortBy.Order()),
		viewmodel.WithQuery(n.Query),
		viewmodel.WithSince(n.Since),
	}
	if !sortBy.Grouped() {
		pp.Table(viewmodel.SortByTitle(j.Entries(), view...)...)
		return nil
	}
	pp.Groups(j.View(view...))
	return nil
}

// Calendar prints a month grid marking the days that have entries.
type Calendar struct {
	Month time.Time

	Session *session.Session
	Out     io.Writer
}

func (n *Calendar) Do(_ context.Context) error {
	if n.Session == nil {
		return errors.New("can not show calendar, no session")
	}
	if _, err := n.Session.RequireUser(); err != nil {
		return err
	}
	month := n.Month
	if month.IsZero() {
		month = time.Now()
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Month(month, n.Session.Journal().View())
	return nil
}
