package options

import (
	"github.com/spf13/pflag"
)

// ConfigOptions select the configuration file and log verbosity for every
// command.
type ConfigOptions struct {
	File  string
	Debug bool
}

func AddConfigArgs(fs *pflag.FlagSet, o *ConfigOptions) {
	fs.StringVar(&o.File, "config", "",
		"Config file to read instead of searching for .diary.yaml.")
	fs.BoolVar(&o.Debug, "debug", false,
		"Log at debug level.")
}
