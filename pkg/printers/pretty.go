// Package printers renders journal data for the command line.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/notify"
	"tableflip.dev/diary/pkg/viewmodel"
)

const defaultWidth = 80

type PrettyPrint struct {
	ShowID bool
	// Width wraps entry content. Zero means 80 columns.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("00000000-0000-0000-0000-000000000000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return defaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Groups prints each day heading followed by its entries.
func (pp *PrettyPrint) Groups(groups []viewmodel.Group) {
	if len(groups) == 0 {
		pp.none()
		return
	}
	for _, g := range groups {
		day := g.Day
		if !g.Date.IsZero() {
			day = g.Date.Format("Monday, January 2, 2006")
		} else if day == "" {
			day = "Undated"
		}
		pp.TitleWithCount(day, len(g.Entries))
		pp.Entries(g.Entries...)
	}
}

// Entries prints one line per entry.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	t := color.New()
	f := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), e.ID)
			if pad := len(spacing) - len(e.ID); pad > 0 {
				_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
			}
		}
		_, _ = f.Fprintf(pp.out(), "%s  ", e.Created.Local().Format("15:04"))
		_, _ = t.Fprintln(pp.out(), e.Title)
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Table prints a flat list, as produced by the title sort.
func (pp *PrettyPrint) Table(entries ...*entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}
	table := uitable.New()
	table.MaxColWidth = uint(pp.width() / 2)
	table.Wrap = true
	if pp.ShowID {
		table.AddRow("ID", "DATE", "TITLE")
	} else {
		table.AddRow("DATE", "TITLE")
	}
	for _, e := range entries {
		if pp.ShowID {
			table.AddRow(e.ID, e.Created.Display(), e.Title)
		} else {
			table.AddRow(e.Created.Display(), e.Title)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), table)
}

// Detail prints one entry in full.
func (pp *PrettyPrint) Detail(e *entry.Entry) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	_, _ = b.Fprintln(pp.out(), e.Title)
	_, _ = f.Fprintln(pp.out(), e.Created.Display())
	if pp.ShowID {
		_, _ = f.Fprintln(pp.out(), e.ID)
	}
	_, _ = fmt.Fprintln(pp.out(), "")
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(e.Content, pp.width()))

	if e.Feedback != "" {
		_, _ = fmt.Fprintln(pp.out(), "")
		_, _ = b.Fprintln(pp.out(), "Feedback")
		_, _ = fmt.Fprintln(pp.out(), indent.String(wordwrap.String(e.Feedback, pp.width()-2), 2))
	}
}

// Notification prints a status line coloured by outcome.
func (pp *PrettyPrint) Notification(n notify.Notification) {
	if n.IsZero() {
		return
	}
	c := color.New(color.FgGreen)
	if n.Status == notify.StatusError {
		c = color.New(color.FgRed)
	}
	_, _ = c.Fprintln(pp.out(), n.Message)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	if w == nil {
		w = color.Output
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
