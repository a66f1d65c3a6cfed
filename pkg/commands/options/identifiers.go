package options

import (
	"github.com/spf13/pflag"
)

// IDOptions
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(fs *pflag.FlagSet, o *IDOptions) {
	fs.BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each entry.")
}
