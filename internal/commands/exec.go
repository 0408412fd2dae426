package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func newExecCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <command line...>",
		Short: "Run a single expense command and exit",
		Example: `  cashbuddy exec add a/12.50 desc/Lunch cat/Food
  cashbuddy --config ~/budget/cashbuddy.yaml exec list`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), *configPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			a.session.Execute(cmd.Context(), strings.Join(args, " "))
			return nil
		},
	}

	// Everything after the expense keyword belongs to the expense command,
	// so "exec delete -1" reaches the parser instead of the flag parser.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
