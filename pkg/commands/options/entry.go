package options

import (
	"github.com/spf13/pflag"
)

// EntryOptions hold the editable fields of an entry.
type EntryOptions struct {
	Title   string
	Content string

	fs *pflag.FlagSet
}

func AddEntryArgs(fs *pflag.FlagSet, o *EntryOptions) {
	fs.StringVarP(&o.Title, "title", "t", "",
		"Entry title.")
	fs.StringVarP(&o.Content, "content", "c", "",
		"Entry content.")
	o.fs = fs
}

// Changed returns pointers to the fields that were given on the command
// line, nil for the others.
func (o *EntryOptions) Changed() (title, content *string) {
	if o.fs == nil {
		return nil, nil
	}
	if o.fs.Changed("title") {
		title = &o.Title
	}
	if o.fs.Changed("content") {
		content = &o.Content
	}
	return title, content
}
