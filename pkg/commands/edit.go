package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or content of an entry.",
		Long: options.Wrap80(`Change the title or content of an entry. With neither --title nor
--content, both are prompted for with the current value filled in.`),
		Example: `
diary edit 0b5e... --title "Tuesday"
diary edit 0b5e...
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), envOptions{})
			if err != nil {
				return err
			}
			defer e.Close()
			title, content := eo.Changed()
			ed := edit.Edit{
				ID:      args[0],
				Title:   title,
				Content: content,
				ShowID:  io.ShowID,
				Session: e.Session,
				Out:     cmd.OutOrStdout(),
			}
			return ed.Do(cmd.Context())
		},
	}
	options.AddEntryArgs(cmd.Flags(), eo)
	options.AddShowIDArgs(cmd.Flags(), io)

	topLevel.AddCommand(cmd)
}
