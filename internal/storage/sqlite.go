package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/cashbuddy-dev/cashbuddy/internal/ledger"
	"github.com/cashbuddy-dev/cashbuddy/internal/model"
)

// DatabaseFile is the SQLite database written by SQLiteBackend.
const DatabaseFile = "cashbuddy.db"

const schema = `
CREATE TABLE IF NOT EXISTS expenses (
	position    INTEGER PRIMARY KEY,
	amount      TEXT    NOT NULL,
	description TEXT    NOT NULL,
	category    TEXT    NOT NULL,
	paid        INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

const budgetKey = "budget"

// SQLiteBackend stores snapshots in <dir>/cashbuddy.db. Amounts are kept as
// decimal text so they round-trip exactly.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database under dir.
func OpenSQLite(dir string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Load reads expenses in position order along with the budget.
func (b *SQLiteBackend) Load(ctx context.Context) (ledger.Snapshot, error) {
	var snap ledger.Snapshot

	var rawBudget string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, budgetKey).Scan(&rawBudget)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return ledger.Snapshot{}, fmt.Errorf("querying budget: %w", err)
	default:
		budget, err := decimal.NewFromString(rawBudget)
		if err != nil {
			return ledger.Snapshot{}, fmt.Errorf("parsing budget %q: %w", rawBudget, err)
		}
		snap.Budget = budget
	}

	rows, err := b.db.QueryContext(ctx, `SELECT amount, description, category, paid FROM expenses ORDER BY position`)
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rawAmount string
		var e model.Expense
		if err := rows.Scan(&rawAmount, &e.Description, &e.Category, &e.Paid); err != nil {
			return ledger.Snapshot{}, fmt.Errorf("scanning expense: %w", err)
		}
		e.Amount, err = decimal.NewFromString(rawAmount)
		if err != nil {
			return ledger.Snapshot{}, fmt.Errorf("parsing amount %q: %w", rawAmount, err)
		}
		snap.Expenses = append(snap.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("reading expenses: %w", err)
	}
	return snap, nil
}

// Save replaces the stored snapshot in a single transaction.
func (b *SQLiteBackend) Save(ctx context.Context, snap ledger.Snapshot) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clearing expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO expenses (position, amount, description, category, paid) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range snap.Expenses {
		if _, err := stmt.ExecContext(ctx, i+1, e.Amount.String(), e.Description, e.Category, e.Paid); err != nil {
			return fmt.Errorf("inserting expense %d: %w", i+1, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		budgetKey, snap.Budget.String()); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
