package options

import (
	"time"

	"github.com/spf13/pflag"

	"tableflip.dev/diary/pkg/timeutil"
	"tableflip.dev/diary/pkg/viewmodel"
)

// ListOptions
type ListOptions struct {
	Sort  string
	Query string
	Since string
}

func AddListArgs(fs *pflag.FlagSet, o *ListOptions) {
	fs.StringVarP(&o.Sort, "sort", "s", string(viewmodel.SortNewest),
		"Order entries: desc (newest day first), asc (oldest day first) or title.")
	fs.StringVarP(&o.Query, "query", "q", "",
		"Only show entries whose title or content contains this text.")
	fs.StringVar(&o.Since, "since", "",
		"Only show entries written within this window, e.g. 3d or 1w2d.")
}

// Resolve parses the sort directive.
func (o *ListOptions) Resolve() (viewmodel.Sort, error) {
	return viewmodel.ParseSort(o.Sort)
}

// SinceTime is the start of the --since window, zero when unset.
func (o *ListOptions) SinceTime(now time.Time) (time.Time, error) {
	if o.Since == "" {
		return time.Time{}, nil
	}
	return timeutil.Since(now, o.Since)
}
