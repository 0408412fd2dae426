package model

import "github.com/shopspring/decimal"

// BudgetStatus classifies the remaining balance against the alert threshold.
type BudgetStatus string

const (
	BudgetOK       BudgetStatus = "ok"
	BudgetNear     BudgetStatus = "near"
	BudgetEqual    BudgetStatus = "equal"
	BudgetExceeded BudgetStatus = "exceeded"
)

// DefaultAlertThreshold is the remaining balance below which the budget is NEAR.
var DefaultAlertThreshold = decimal.NewFromInt(10)

// EvaluateBudget classifies a remaining balance:
//
//	remaining < 0            -> exceeded
//	remaining == 0           -> equal
//	0 < remaining < threshold -> near
//	otherwise                -> ok
func EvaluateBudget(remaining, threshold decimal.Decimal) BudgetStatus {
	switch {
	case remaining.IsNegative():
		return BudgetExceeded
	case remaining.IsZero():
		return BudgetEqual
	case remaining.LessThan(threshold):
		return BudgetNear
	default:
		return BudgetOK
	}
}
