package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry.",
		Example: `
diary delete 0b5e...
diary rm --yes 0b5e...
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), envOptions{})
			if err != nil {
				return err
			}
			defer e.Close()
			r := remove.Remove{
				ID:      args[0],
				Yes:     yes,
				Session: e.Session,
				Out:     cmd.OutOrStdout(),
			}
			return r.Do(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")

	topLevel.AddCommand(cmd)
}
