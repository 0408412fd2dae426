// Package ledger holds the expense store: the ordered expenses, the budget,
// and the running totals derived from them.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cashbuddy-dev/cashbuddy/internal/failure"
	"github.com/cashbuddy-dev/cashbuddy/internal/model"
)

// Store owns the expenses and keeps these totals in step with them:
//
//	totalSpent = sum of Amount over paid expenses
//	remaining  = budget - totalSpent
//
// Indexes passed to and returned from Store are 1-based.
type Store struct {
	expenses   []model.Expense
	budget     decimal.Decimal
	totalSpent decimal.Decimal
	remaining  decimal.Decimal
	threshold  decimal.Decimal
	log        *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithAlertThreshold sets the remaining balance below which the budget
// status becomes NEAR.
func WithAlertThreshold(threshold decimal.Decimal) Option {
	return func(s *Store) {
		s.threshold = threshold
	}
}

// NewStore returns an empty store with a zero budget.
func NewStore(opts ...Option) *Store {
	s := &Store{
		threshold: model.DefaultAlertThreshold,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Budget returns the budget, zero until one is set.
func (s *Store) Budget() decimal.Decimal {
	return s.budget
}

// TotalSpent returns the sum of all paid expenses.
func (s *Store) TotalSpent() decimal.Decimal {
	return s.totalSpent
}

// RemainingBalance returns budget minus total spent. It is negative when
// the budget is exceeded.
func (s *Store) RemainingBalance() decimal.Decimal {
	return s.remaining
}

// Len returns the number of expenses.
func (s *Store) Len() int {
	return len(s.expenses)
}

// List returns a copy of the expenses in insertion order.
func (s *Store) List() []model.Expense {
	return slices.Clone(s.expenses)
}

// Get returns the expense at a 1-based index.
func (s *Store) Get(index int) (model.Expense, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Expense{}, err
	}
	return s.expenses[index-1], nil
}

// Add appends an expense. The expense is re-validated; a rejected expense
// leaves the store unchanged.
func (s *Store) Add(e model.Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}

	s.expenses = append(s.expenses, e)
	if e.Paid {
		s.applyPaid(e.Amount)
	}
	s.log.Info("added expense", "amount", e.Amount.StringFixed(2), "description", e.Description, "category", e.Category)
	s.log.Debug("expense count", "size", len(s.expenses))
	return nil
}

// Delete removes and returns the expense at index. Later expenses move down
// by one. Deleting a paid expense reduces the total spent.
func (s *Store) Delete(index int) (model.Expense, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Expense{}, err
	}

	removed := s.expenses[index-1]
	s.expenses = slices.Delete(s.expenses, index-1, index)
	if removed.Paid {
		s.applyPaid(removed.Amount.Neg())
	}

	s.log.Info("deleted expense", "index", index, "description", removed.Description)
	return removed, nil
}

// Replace swaps the expense at index for e, carrying over the paid flag of
// the expense being replaced. It returns the stored replacement.
func (s *Store) Replace(index int, e model.Expense) (model.Expense, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Expense{}, err
	}
	if err := validateExpense(e); err != nil {
		return model.Expense{}, err
	}

	old := s.expenses[index-1]
	e.Paid = old.Paid
	s.expenses[index-1] = e

	if old.Paid {
		s.applyPaid(e.Amount.Sub(old.Amount))
	}

	s.log.Info("replaced expense", "index", index, "description", e.Description, "paid", e.Paid)
	return e, nil
}

// Mark flags the expense at index as paid. Marking a paid expense is a no-op.
func (s *Store) Mark(index int) (model.Expense, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Expense{}, err
	}

	e := &s.expenses[index-1]
	if !e.Paid {
		e.Paid = true
		s.applyPaid(e.Amount)
	}
	return *e, nil
}

// Unmark clears the paid flag. Unmarking an unpaid expense is a no-op.
func (s *Store) Unmark(index int) (model.Expense, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Expense{}, err
	}

	e := &s.expenses[index-1]
	if e.Paid {
		e.Paid = false
		s.applyPaid(e.Amount.Neg())
	}
	return *e, nil
}

// SetBudget sets a positive budget.
func (s *Store) SetBudget(amount decimal.Decimal) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	s.budget = amount
	s.recalculateRemaining()
	s.log.Info("budget set", "budget", amount.StringFixed(2))
	return nil
}

// BudgetStatus classifies the current remaining balance.
func (s *Store) BudgetStatus() model.BudgetStatus {
	return model.EvaluateBudget(s.remaining, s.threshold)
}

// Sorted returns the expenses ordered by amount, highest first. Equal
// amounts keep insertion order. The store itself is not reordered.
func (s *Store) Sorted() []model.Expense {
	sorted := slices.Clone(s.expenses)
	slices.SortStableFunc(sorted, func(a, b model.Expense) int {
		return b.Amount.Cmp(a.Amount)
	})
	s.log.Debug("sorted expenses", "size", len(sorted))
	return sorted
}

// FindByCategory returns expenses whose category contains term,
// case-insensitively, in store order.
func (s *Store) FindByCategory(term string) ([]model.Expense, error) {
	return s.find(term, failure.FieldCategory, func(e model.Expense) string { return e.Category })
}

// FindByDescription returns expenses whose description contains term,
// case-insensitively, in store order.
func (s *Store) FindByDescription(term string) ([]model.Expense, error) {
	return s.find(term, failure.FieldDescription, func(e model.Expense) string { return e.Description })
}

func (s *Store) find(term string, field failure.Field, value func(model.Expense) string) ([]model.Expense, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		if field == failure.FieldCategory {
			return nil, failure.EmptyCategory("")
		}
		return nil, failure.EmptyDescription("")
	}

	var found []model.Expense
	for _, e := range s.expenses {
		if strings.Contains(strings.ToLower(value(e)), needle) {
			found = append(found, e)
		}
	}

	s.log.Info("found expenses", "field", field, "term", term, "matches", len(found))
	return found, nil
}

// RecomputeTotalSpent sums the paid expenses from scratch.
func (s *Store) RecomputeTotalSpent() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.expenses {
		if e.Paid {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// ErrInvariant is wrapped by errors returned from CheckInvariants.
var ErrInvariant = errors.New("store invariant violated")

// CheckInvariants verifies the running totals against a full recomputation.
func (s *Store) CheckInvariants() error {
	if want := s.RecomputeTotalSpent(); !s.totalSpent.Equal(want) {
		return errorf("total spent %s, recomputed %s", s.totalSpent.StringFixed(2), want.StringFixed(2))
	}
	if want := s.budget.Sub(s.totalSpent); !s.remaining.Equal(want) {
		return errorf("remaining %s, expected %s", s.remaining.StringFixed(2), want.StringFixed(2))
	}
	if s.totalSpent.IsNegative() {
		return errorf("total spent is negative: %s", s.totalSpent.StringFixed(2))
	}
	return nil
}

// applyPaid adjusts the total spent by delta and recomputes the remaining balance.
func (s *Store) applyPaid(delta decimal.Decimal) {
	s.totalSpent = s.totalSpent.Add(delta)
	s.recalculateRemaining()
	s.log.Debug("updated totals", "total_spent", s.totalSpent.StringFixed(2), "remaining", s.remaining.StringFixed(2))
}

func (s *Store) recalculateRemaining() {
	s.remaining = s.budget.Sub(s.totalSpent)
}

func (s *Store) checkIndex(index int) error {
	if len(s.expenses) == 0 {
		return failure.EmptyList("")
	}
	if index < 1 || index > len(s.expenses) {
		return failure.IndexOutOfRange("", index, len(s.expenses))
	}
	return nil
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...)
}

// validateAmount checks the limits first so an out-of-range value is never
// formatted.
func validateAmount(amount decimal.Decimal) error {
	if model.AmountTooLarge(amount) {
		return failure.AmountTooLarge("", model.MaxAmountIntegerDigits)
	}
	if model.AmountTooPrecise(amount) {
		return failure.AmountTooPrecise("", model.MaxAmountDecimals)
	}
	if !amount.IsPositive() {
		return failure.AmountNotPositive("", amount.String())
	}
	return nil
}

func validateExpense(e model.Expense) error {
	if err := validateAmount(e.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(e.Description) == "" {
		return failure.EmptyDescription("")
	}
	if strings.TrimSpace(e.Category) == "" {
		return failure.EmptyCategory("")
	}
	return nil
}
