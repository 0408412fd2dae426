package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cashbuddy-dev/cashbuddy/internal/config"
	"github.com/cashbuddy-dev/cashbuddy/internal/gitops"
	"github.com/cashbuddy-dev/cashbuddy/internal/ledger"
	"github.com/cashbuddy-dev/cashbuddy/internal/logging"
	"github.com/cashbuddy-dev/cashbuddy/internal/session"
	"github.com/cashbuddy-dev/cashbuddy/internal/storage"
	"github.com/cashbuddy-dev/cashbuddy/internal/ui"
)

// app is everything a command needs to run expense commands.
type app struct {
	session *session.Session
	ui      *ui.Renderer
	backend storage.Backend
}

// openApp loads the config at configPath, restores the saved expenses and
// builds a session that renders to out.
func openApp(ctx context.Context, configPath string, out io.Writer) (*app, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(cfg.LogLevel)

	dir := cfg.DataDir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	backend, err := storage.Open(cfg.Data.Backend, dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened storage", "backend", cfg.Data.Backend, "dir", dir)

	store := storage.LoadStore(ctx, backend, logger, ledger.WithAlertThreshold(cfg.Budget.AlertThreshold))
	renderer := ui.New(out)

	opts := []session.Option{
		session.WithSaver(backend),
		session.WithLogger(logger),
	}
	if c := committer(cfg, dir, logger); c != nil {
		opts = append(opts, session.WithCommitter(c))
	}

	return &app{
		session: session.New(store, renderer, opts...),
		ui:      renderer,
		backend: backend,
	}, nil
}

func committer(cfg *config.Config, dir string, logger *slog.Logger) *gitops.Committer {
	if !cfg.Git.AutoCommit {
		return nil
	}
	if !gitops.IsRepo(dir) {
		logger.Warn("git auto-commit is enabled but the data directory is not a repository", "dir", dir)
		return nil
	}
	return gitops.NewCommitter(dir, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
}

func (a *app) Close() error {
	return a.backend.Close()
}
