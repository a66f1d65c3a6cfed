package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
)

var (
	co = &options.ConfigOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:           "diary",
		Short:         options.Wrap80("A personal journal on the command line."),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddConfigArgs(cmd.PersistentFlags(), co)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addLogin(topLevel)
	addLogout(topLevel)
	addWhoAmI(topLevel)
	addPasswd(topLevel)
	addList(topLevel)
	addCalendar(topLevel)
	addAdd(topLevel)
	addShow(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
}
