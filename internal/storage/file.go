package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cashbuddy-dev/cashbuddy/internal/ledger"
)

// Files written by FileBackend.
const (
	ExpensesFile = "expenses.csv"
	BudgetFile   = "budget.yaml"
)

// budgetState is the YAML form of budget.yaml.
type budgetState struct {
	Budget decimal.Decimal `yaml:"budget"`
}

// FileBackend stores expenses in <dir>/expenses.csv and the budget in
// <dir>/budget.yaml.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a FileBackend rooted at dir. The directory is
// created on first Save.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Dir returns the data directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

// Load reads both files. Missing files yield empty values.
func (b *FileBackend) Load(ctx context.Context) (ledger.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Snapshot{}, err
	}

	var snap ledger.Snapshot

	f, err := os.Open(filepath.Join(b.dir, ExpensesFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return ledger.Snapshot{}, fmt.Errorf("opening expenses: %w", err)
	default:
		defer f.Close()
		expenses, err := ReadExpenses(f)
		if err != nil {
			return ledger.Snapshot{}, fmt.Errorf("reading expenses: %w", err)
		}
		snap.Expenses = expenses
	}

	data, err := os.ReadFile(filepath.Join(b.dir, BudgetFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return ledger.Snapshot{}, fmt.Errorf("reading budget: %w", err)
	default:
		var state budgetState
		if err := yaml.Unmarshal(data, &state); err != nil {
			return ledger.Snapshot{}, fmt.Errorf("parsing budget: %w", err)
		}
		snap.Budget = state.Budget
	}

	return snap, nil
}

// Save rewrites both files. Each file is written to a temporary name and
// renamed into place.
func (b *FileBackend) Save(ctx context.Context, snap ledger.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteExpenses(&buf, snap.Expenses); err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(b.dir, ExpensesFile), buf.Bytes()); err != nil {
		return fmt.Errorf("writing expenses: %w", err)
	}

	data, err := yaml.Marshal(budgetState{Budget: snap.Budget})
	if err != nil {
		return fmt.Errorf("marshaling budget: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(b.dir, BudgetFile), data); err != nil {
		return fmt.Errorf("writing budget: %w", err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (b *FileBackend) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
