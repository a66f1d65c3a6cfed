package commands

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry in full.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), envOptions{})
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			s := show.Show{
				ID:      args[0],
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Width:   terminalWidth(),
				Session: e.Session,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddShowIDArgs(cmd.Flags(), io)
	options.AddOutputArg(cmd.Flags(), oo)

	topLevel.AddCommand(cmd)
}

// terminalWidth is the width of stdout, or zero when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
