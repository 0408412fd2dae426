// Package session runs commands against an expense store: parse, apply,
// render, then persist.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cashbuddy-dev/cashbuddy/internal/failure"
	"github.com/cashbuddy-dev/cashbuddy/internal/ledger"
	"github.com/cashbuddy-dev/cashbuddy/internal/model"
	"github.com/cashbuddy-dev/cashbuddy/internal/parser"
	"github.com/cashbuddy-dev/cashbuddy/internal/ui"
)

// Saver persists a snapshot after every successful change.
type Saver interface {
	Save(ctx context.Context, snap ledger.Snapshot) error
}

// Committer records a saved change, e.g. as a git commit.
type Committer interface {
	Commit(ctx context.Context, message string) error
}

// Session holds no state between commands besides the store itself.
type Session struct {
	parser    *parser.Parser
	store     *ledger.Store
	ui        *ui.Renderer
	saver     Saver
	committer Committer
	log       *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithSaver persists the store after every successful change.
func WithSaver(s Saver) Option {
	return func(sess *Session) { sess.saver = s }
}

// WithCommitter records every saved change, e.g. as a git commit.
func WithCommitter(c Committer) Option {
	return func(sess *Session) { sess.committer = c }
}

// WithLogger sets the diagnostics logger. nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(sess *Session) {
		if l != nil {
			sess.log = l
		}
	}
}

// New creates a Session over store, rendering to renderer.
func New(store *ledger.Store, renderer *ui.Renderer, opts ...Option) *Session {
	s := &Session{
		store: store,
		ui:    renderer,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = parser.New(s.log)
	return s
}

// Store returns the underlying store.
func (s *Session) Store() *ledger.Store {
	return s.store
}

// Execute runs one input line and reports whether the session should end.
// Failures are rendered and never returned: the store is left as it was.
func (s *Session) Execute(ctx context.Context, line string) (exit bool) {
	s.ui.Separator()
	defer s.ui.Separator()

	req, err := s.parser.Parse(line)
	if err != nil {
		s.ui.Error(err)
		return false
	}

	change, err := s.apply(req)
	if err != nil {
		err = failure.Scope(err, req.Command())
		s.log.Debug("command failed", "command", req.Command(), "kind", failure.KindOf(err), "error", err)
		s.ui.Error(err)
		return false
	}

	if parser.Mutates(req) {
		s.persist(ctx, change)
	}

	_, bye := req.(parser.ByeRequest)
	return bye
}

// Run reads commands from r until bye, end of input, or ctx is done.
// prompt controls whether "> " is printed before each line.
func (s *Session) Run(ctx context.Context, r io.Reader, prompt bool) error {
	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompt {
			s.ui.Prompt()
		}
		if !scanner.Scan() {
			break
		}
		if s.Execute(ctx, scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// apply executes req and returns a short description of the change.
func (s *Session) apply(req parser.Request) (string, error) {
	switch r := req.(type) {
	case parser.AddRequest:
		e := model.NewExpense(r.Amount, r.Description, r.Category)
		if err := s.store.Add(e); err != nil {
			return "", err
		}
		s.ui.NewExpense(e)
		return "add: " + e.Description, nil

	case parser.DeleteRequest:
		removed, err := s.store.Delete(r.Index)
		if err != nil {
			return "", err
		}
		s.ui.DeletedExpense(removed)
		s.showBudgetStatus()
		return "delete: " + removed.Description, nil

	case parser.EditRequest:
		return s.edit(r)

	case parser.MarkRequest:
		e, err := s.store.Mark(r.Index)
		if err != nil {
			return "", err
		}
		s.ui.MarkedExpense(e)
		s.showBudgetStatus()
		return "mark: " + e.Description, nil

	case parser.UnmarkRequest:
		e, err := s.store.Unmark(r.Index)
		if err != nil {
			return "", err
		}
		s.ui.UnmarkedExpense(e)
		s.showBudgetStatus()
		return "unmark: " + e.Description, nil

	case parser.SetBudgetRequest:
		if err := s.store.SetBudget(r.Amount); err != nil {
			return "", err
		}
		s.ui.NewBudget(s.store.Budget())
		return "setbudget: " + r.Amount.StringFixed(2), nil

	case parser.FindRequest:
		var found []model.Expense
		var err error
		if r.By == parser.FindByCategory {
			found, err = s.store.FindByCategory(r.Term)
		} else {
			found, err = s.store.FindByDescription(r.Term)
		}
		if err != nil {
			return "", err
		}
		s.ui.Found(found, r.By, r.Term)
		return "", nil

	case parser.ListRequest:
		s.ui.List(ui.Summary{
			Budget:     s.store.Budget(),
			TotalSpent: s.store.TotalSpent(),
			Remaining:  s.store.RemainingBalance(),
			Expenses:   s.store.List(),
		})
		return "", nil

	case parser.SortRequest:
		s.ui.Sorted(s.store.Sorted())
		return "", nil

	case parser.HelpRequest:
		s.ui.Menu()
		return "", nil

	case parser.ByeRequest:
		s.ui.Goodbye()
		return "", nil

	default:
		return "", fmt.Errorf("unhandled request %T", req)
	}
}

// edit rebuilds the expense from the requested fields, falling back to the
// current values for fields left unchanged.
func (s *Session) edit(r parser.EditRequest) (string, error) {
	current, err := s.store.Get(r.Index)
	if err != nil {
		return "", err
	}

	edited := model.NewExpense(
		r.Amount.Or(current.Amount),
		r.Description.Or(current.Description),
		r.Category.Or(current.Category),
	)
	stored, err := s.store.Replace(r.Index, edited)
	if err != nil {
		return "", err
	}

	if r.HasChanges() {
		s.ui.EditedExpense(stored)
	} else {
		s.ui.EmptyEdit(stored)
	}
	s.showBudgetStatus()
	return fmt.Sprintf("edit: #%d %s", r.Index, stored.Description), nil
}

// showBudgetStatus alerts after changes to paid amounts. Nothing is shown
// until a budget has been set.
func (s *Session) showBudgetStatus() {
	if !s.store.Budget().IsPositive() {
		return
	}
	if status := s.store.BudgetStatus(); status != model.BudgetOK {
		s.ui.BudgetStatus(status, s.store.RemainingBalance())
	}
}

// persist saves the snapshot and optionally commits it. Failures are
// logged; the in-memory change stands.
func (s *Session) persist(ctx context.Context, change string) {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(ctx, s.store.Snapshot()); err != nil {
		s.log.Warn("failed to save expenses", "error", err)
		return
	}
	if s.committer == nil {
		return
	}
	if err := s.committer.Commit(ctx, change); err != nil {
		s.log.Warn("failed to commit change", "change", change, "error", err)
	}
}
