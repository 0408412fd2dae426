package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cashbuddy-dev/cashbuddy/internal/config"
	"github.com/cashbuddy-dev/cashbuddy/internal/gitops"
	"github.com/cashbuddy-dev/cashbuddy/internal/ledger"
	"github.com/cashbuddy-dev/cashbuddy/internal/storage"
)

func newInitCommand() *cobra.Command {
	var backend string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new CashBuddy project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, backend, useGit)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", config.BackendCSV, "storage backend (csv or sqlite)")
	cmd.Flags().BoolVar(&useGit, "git", false, "commit the data directory after every change")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir, backend string, useGit bool) error {
	configPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Data.Backend = backend
	cfg.Git.AutoCommit = useGit
	if err := cfg.Validate(); err != nil {
		return err
	}

	dataDir := cfg.DataDir(configPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write an empty ledger so the data files exist from the start.
	b, err := storage.Open(cfg.Data.Backend, dataDir)
	if err != nil {
		return err
	}
	defer b.Close()
	if err := b.Save(ctx, ledger.NewStore().Snapshot()); err != nil {
		return fmt.Errorf("writing empty ledger: %w", err)
	}

	if !useGit {
		fmt.Fprintf(out, "Initialized CashBuddy project at %s\n", dir)
		return nil
	}

	if err := gitops.Init(ctx, dataDir); err != nil {
		return err
	}
	c := gitops.NewCommitter(dataDir, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	hash, err := c.CommitAll(ctx, "init: empty ledger")
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized CashBuddy project at %s (%s)\n", dir, hash)
	return nil
}
