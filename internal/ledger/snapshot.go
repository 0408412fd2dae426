package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cashbuddy-dev/cashbuddy/internal/model"
)

// Snapshot is the persisted form of a Store. Totals are not stored; they
// are derived again on Restore.
type Snapshot struct {
	Budget   decimal.Decimal
	Expenses []model.Expense
}

// Snapshot returns a copy of the store's persistent state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Budget: s.budget, Expenses: s.List()}
}

// Restore builds a Store from a snapshot, validating every expense and
// deriving the totals from scratch.
func Restore(snap Snapshot, opts ...Option) (*Store, error) {
	s := NewStore(opts...)

	if snap.Budget.IsNegative() {
		return nil, errors.New("restoring budget: negative budget")
	}
	if snap.Budget.IsPositive() {
		if err := s.SetBudget(snap.Budget); err != nil {
			return nil, fmt.Errorf("restoring budget: %w", err)
		}
	}

	for i, e := range snap.Expenses {
		if err := s.Add(e); err != nil {
			return nil, fmt.Errorf("restoring expense %d: %w", i+1, err)
		}
	}

	if err := s.CheckInvariants(); err != nil {
		return nil, err
	}
	return s, nil
}
