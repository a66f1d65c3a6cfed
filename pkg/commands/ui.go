package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/diary/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
diary ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), envOptions{quiet: true})
			if err != nil {
				return err
			}
			defer e.Close()
			i := teaui.UI{
				Session: e.Session,
				Watcher: e.Store,
				Logger:  e.Log.Named("ui"),
			}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
