package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries grouped by day.",
		Example: `
diary list
diary list --sort asc
diary list --sort title --query run
diary list --since 1w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sortBy, err := lo.Resolve()
			if err != nil {
				return oo.HandleError(err)
			}
			since, err := lo.SinceTime(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := openEnv(cmd.Context(), envOptions{})
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			l := list.List{
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Sort:    sortBy,
				Query:   lo.Query,
				Since:   since,
				Session: e.Session,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}
	options.AddListArgs(cmd.Flags(), lo)
	options.AddShowIDArgs(cmd.Flags(), io)
	options.AddOutputArg(cmd.Flags(), oo)

	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command) {
	var month string
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month with the days you wrote on highlighted.",
		Example: `
diary calendar
diary calendar --month 2024-03
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var then time.Time
			if month != "" {
				var err error
				if then, err = time.Parse("2006-01", month); err != nil {
					return fmt.Errorf("invalid month %q, expected YYYY-MM", month)
				}
			}
			e, err := openEnv(cmd.Context(), envOptions{})
			if err != nil {
				return err
			}
			defer e.Close()
			c := list.Calendar{Month: then, Session: e.Session, Out: cmd.OutOrStdout()}
			return c.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show as YYYY-MM. Defaults to this month.")

	topLevel.AddCommand(cmd)
}
