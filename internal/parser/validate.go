package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cashbuddy-dev/cashbuddy/internal/failure"
	"github.com/cashbuddy-dev/cashbuddy/internal/model"
)

// categoryPattern: a letter followed by up to 19 letters, digits, spaces or hyphens.
var categoryPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 \-]{0,19}$`)

// ValidateAmount parses a strictly positive decimal amount within the
// limits set by model.AmountTooLarge and model.AmountTooPrecise.
func ValidateAmount(raw, command string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, failure.EmptyAmount(command)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, failure.InvalidAmount(command, raw, err)
	}

	if !amount.IsPositive() {
		return decimal.Decimal{}, failure.AmountNotPositive(command, raw)
	}
	if model.AmountTooLarge(amount) {
		return decimal.Decimal{}, failure.AmountTooLarge(command, model.MaxAmountIntegerDigits)
	}
	if model.AmountTooPrecise(amount) {
		return decimal.Decimal{}, failure.AmountTooPrecise(command, model.MaxAmountDecimals)
	}
	return amount, nil
}

// ValidateDescription returns the trimmed, non-blank description.
func ValidateDescription(raw, command string) (string, error) {
	desc := strings.TrimSpace(raw)
	if desc == "" {
		return "", failure.EmptyDescription(command)
	}
	return desc, nil
}

// ValidateCategory returns the trimmed category. When the cat/ prefix was not
// given at all (present == false) the default category is returned.
func ValidateCategory(raw string, present bool, command string) (string, error) {
	if !present {
		return model.DefaultCategory, nil
	}

	category := strings.TrimSpace(raw)
	if category == "" {
		return "", failure.EmptyCategory(command)
	}
	if !categoryPattern.MatchString(category) {
		return "", failure.InvalidCategory(command, category)
	}
	return category, nil
}

// ValidateIndex parses a 1-based index. The upper bound depends on the live
// store and is checked there.
func ValidateIndex(raw, command string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, failure.MissingIndex(command)
	}

	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, failure.InvalidIndex(command, raw, err)
	}

	if index < 1 {
		return 0, failure.IndexTooSmall(command)
	}
	return index, nil
}
