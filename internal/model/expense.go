package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned when an expense is added without cat/.
const DefaultCategory = "Uncategorized"

// Expense is one spending entry. Only Paid changes after creation; edits
// replace the whole record.
type Expense struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	Paid        bool
}

// NewExpense returns an unpaid expense.
func NewExpense(amount decimal.Decimal, description, category string) Expense {
	return Expense{Amount: amount, Description: description, Category: category}
}

// StatusIcon returns "[X]" for a paid expense and "[ ]" otherwise.
func (e Expense) StatusIcon() string {
	if e.Paid {
		return "[X]"
	}
	return "[ ]"
}

// String formats the expense as "[X] [Food] Lunch - $12.50".
func (e Expense) String() string {
	return fmt.Sprintf("%s [%s] %s - $%s", e.StatusIcon(), e.Category, e.Description, e.Amount.StringFixed(2))
}

// Amount limits. Both are checked from the exponent and digit count alone,
// so an absurd exponent is rejected without expanding the number.
const (
	MaxAmountIntegerDigits = 12
	MaxAmountDecimals      = 8
)

// AmountTooLarge reports whether d has more than MaxAmountIntegerDigits
// digits before the decimal point.
func AmountTooLarge(d decimal.Decimal) bool {
	return int64(d.NumDigits())+int64(d.Exponent()) > MaxAmountIntegerDigits
}

// AmountTooPrecise reports whether d has more than MaxAmountDecimals
// decimal places.
func AmountTooPrecise(d decimal.Decimal) bool {
	return d.Exponent() < -MaxAmountDecimals
}
