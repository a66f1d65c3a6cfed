package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/auth"
)

func addLogin(topLevel *cobra.Command) {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your journal.",
		Example: `
diary login --email me@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), envOptions{})
			if err != nil {
				return err
			}
			defer e.Close()
			l := auth.Login{
				Email:   email,
				Session: e.Session,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			}
			return l.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email. Prompted for when empty.")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), envOptions{})
			if err != nil {
				return err
			}
			defer e.Close()
			l := auth.Logout{Session: e.Session, Out: cmd.OutOrStdout()}
			return l.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoAmI(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), envOptions{})
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			w := auth.WhoAmI{JSON: oo.JSON, Session: e.Session, Out: cmd.OutOrStdout()}
			return oo.HandleError(w.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd.Flags(), oo)

	topLevel.AddCommand(cmd)
}

func addPasswd(topLevel *cobra.Command) {
	var email string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Hash a password for the accounts section of .diary.yaml.",
		Example: `
diary passwd --email me@example.com >> ~/.diary.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := auth.Passwd{Email: email, Out: cmd.OutOrStdout()}
			return p.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email.")

	topLevel.AddCommand(cmd)
}
