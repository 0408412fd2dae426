package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExpenseString(t *testing.T) {
	e := NewExpense(dec("12.5"), "Lunch", DefaultCategory)
	assert.Equal(t, "[ ] [Uncategorized] Lunch - $12.50", e.String())

	e.Paid = true
	assert.Equal(t, "[X] [Uncategorized] Lunch - $12.50", e.String())
}

func TestNewExpense_Unpaid(t *testing.T) {
	e := NewExpense(dec("3"), "Coffee", "Drinks")
	assert.False(t, e.Paid)
	assert.Equal(t, "Drinks", e.Category)
}

func TestEvaluateBudget(t *testing.T) {
	threshold := DefaultAlertThreshold
	tests := []struct {
		remaining string
		want      BudgetStatus
	}{
		{"-0.01", BudgetExceeded},
		{"-50", BudgetExceeded},
		{"0", BudgetEqual},
		{"0.00", BudgetEqual},
		{"0.01", BudgetNear},
		{"5", BudgetNear},
		{"9.99", BudgetNear},
		{"10", BudgetOK},
		{"10.00", BudgetOK},
		{"160", BudgetOK},
	}
	for _, tt := range tests {
		got := EvaluateBudget(dec(tt.remaining), threshold)
		assert.Equal(t, tt.want, got, "EvaluateBudget(%s)", tt.remaining)
	}
}

func TestEvaluateBudget_CustomThreshold(t *testing.T) {
	assert.Equal(t, BudgetNear, EvaluateBudget(dec("40"), dec("50")))
	assert.Equal(t, BudgetOK, EvaluateBudget(dec("50"), dec("50")))
}

func TestAmountLimits(t *testing.T) {
	tests := []struct {
		amount     string
		tooLarge   bool
		tooPrecise bool
	}{
		{"12.50", false, false},
		{"999999999999.99", false, false},
		{"1000000000000", true, false},
		{"1e12", true, false},
		{"1e11", false, false},
		{"1e2147483647", true, false},
		{"0.00000001", false, false},
		{"0.000000001", false, true},
		{"1e-2147483647", false, true},
	}
	for _, tt := range tests {
		d := dec(tt.amount)
		assert.Equal(t, tt.tooLarge, AmountTooLarge(d), "AmountTooLarge(%s)", tt.amount)
		assert.Equal(t, tt.tooPrecise, AmountTooPrecise(d), "AmountTooPrecise(%s)", tt.amount)
	}
}
