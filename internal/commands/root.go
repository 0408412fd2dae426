package commands

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cashbuddy-dev/cashbuddy/internal/buildinfo"
	"github.com/cashbuddy-dev/cashbuddy/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand it starts an interactive session on stdin.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "cashbuddy",
		Short:   "Track expenses against a budget",
		Version: buildinfo.String(),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, configPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to cashbuddy.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newExecCommand(&configPath))

	return rootCmd
}

func runInteractive(cmd *cobra.Command, configPath string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, configPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	// Piped input gets no banner or prompt, so the transcript stays clean.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		a.ui.Separator()
		a.ui.Welcome()
		a.ui.Separator()
	}
	return a.session.Run(ctx, cmd.InOrStdin(), interactive)
}
