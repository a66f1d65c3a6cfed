package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/viewmodel"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a calendar for the month containing then. Days with at least
// one entry are bold.
func (pp *PrettyPrint) Month(then time.Time, groups []viewmodel.Group) {
	count := make([]int, DaysIn(then))
	for _, g := range groups {
		if g.Date.IsZero() || g.Date.Year() != then.Year() || g.Date.Month() != then.Month() {
			continue
		}
		count[g.Date.Day()-1] += len(g.Entries)
	}
	pp.MonthCount(then, count)
}

// MonthCount prints a month grid from per-day counts.
func (pp *PrettyPrint) MonthCount(then time.Time, count []int) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(pp.out(), "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(pp.out(), "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprintln(pp.out(), "")
		}
	}
	if d != time.Sunday {
		_, _ = fmt.Fprintln(pp.out(), "")
	}
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
