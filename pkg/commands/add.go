package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a new entry.",
		Example: `
diary add --title "Monday" --content "Went for a run."
diary add -t Monday went for a run
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := eo.Content
			if content == "" && len(args) > 0 {
				content = strings.Join(args, " ")
			}
			e, err := openEnv(cmd.Context(), envOptions{})
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			a := add.Add{
				Title:   eo.Title,
				Content: content,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Session: e.Session,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}
	options.AddEntryArgs(cmd.Flags(), eo)
	options.AddShowIDArgs(cmd.Flags(), io)
	options.AddOutputArg(cmd.Flags(), oo)

	topLevel.AddCommand(cmd)
}
