// Package failure defines the structured errors produced by command parsing
// and by the expense store. Callers branch on Kind and Command; Message is
// for display only.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	KindMissingPrefix   Kind = "missing-prefix"
	KindEmptyField      Kind = "empty-field"
	KindInvalidFormat   Kind = "invalid-format"
	KindInvalidCategory Kind = "invalid-category"
	KindOutOfRange      Kind = "out-of-range"
	KindEmptyCollection Kind = "empty-collection"
	KindUnknownCommand  Kind = "unknown-command"
	KindExtraArguments  Kind = "extra-arguments"
)

// Field names the input field a failure refers to.
type Field string

const (
	FieldNone        Field = ""
	FieldAmount      Field = "amount"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldIndex       Field = "index"
	FieldSearch      Field = "search"
)

// Error is a failure raised while parsing or applying a command.
type Error struct {
	Kind    Kind
	Command string // command keyword, empty when raised outside a command
	Field   Field
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Is reports whether err carries a failure of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Scope attaches a command keyword to a failure that has none. Errors that
// are not failures, or already carry a command, are returned unchanged.
func Scope(err error, command string) error {
	var fe *Error
	if !errors.As(err, &fe) || fe.Command != "" {
		return err
	}
	scoped := *fe
	scoped.Command = command
	return &scoped
}

func newError(kind Kind, command string, field Field, msg string) *Error {
	return &Error{Kind: kind, Command: command, Field: field, Message: msg}
}

// MissingPrefix reports a required prefix that does not appear in the arguments.
func MissingPrefix(command, prefix string) *Error {
	field := fieldForPrefix(prefix)
	if field == FieldNone {
		return newError(KindMissingPrefix, command, field, fmt.Sprintf("Missing prefix: %s", prefix))
	}
	return newError(KindMissingPrefix, command, field, fmt.Sprintf("Missing %s prefix '%s'", field, prefix))
}

// MissingSearchPrefix reports a find command carrying neither cat/ nor desc/.
func MissingSearchPrefix(command string) *Error {
	return newError(KindMissingPrefix, command, FieldSearch, "Missing search prefix: use 'cat/' or 'desc/'")
}

func fieldForPrefix(prefix string) Field {
	switch prefix {
	case "a/":
		return FieldAmount
	case "desc/":
		return FieldDescription
	case "cat/":
		return FieldCategory
	case "id/":
		return FieldIndex
	default:
		return FieldNone
	}
}

// EmptyAmount reports an a/ prefix with no value after it.
func EmptyAmount(command string) *Error {
	return newError(KindEmptyField, command, FieldAmount, "Amount is missing after 'a/'")
}

// MissingBudgetAmount reports setbudget given no arguments at all.
func MissingBudgetAmount(command string) *Error {
	return newError(KindEmptyField, command, FieldAmount, "Missing budget amount")
}

// InvalidAmount reports an amount that is not a decimal number. cause is the parse error.
func InvalidAmount(command, raw string, cause error) *Error {
	e := newError(KindInvalidFormat, command, FieldAmount, "Amount is not a valid decimal: "+raw)
	e.Err = cause
	return e
}

// AmountNotPositive reports an amount of zero or less.
func AmountNotPositive(command, raw string) *Error {
	return newError(KindOutOfRange, command, FieldAmount, "Amount must be greater than 0: "+raw)
}

// AmountTooLarge reports an amount with more than maxDigits digits before
// the decimal point.
func AmountTooLarge(command string, maxDigits int) *Error {
	return newError(KindOutOfRange, command, FieldAmount,
		fmt.Sprintf("Amount must have at most %d digits before the decimal point", maxDigits))
}

// AmountTooPrecise reports an amount with more than maxDecimals decimal places.
func AmountTooPrecise(command string, maxDecimals int) *Error {
	return newError(KindInvalidFormat, command, FieldAmount,
		fmt.Sprintf("Amount must have at most %d decimal places", maxDecimals))
}

// EmptyDescription reports a blank description.
func EmptyDescription(command string) *Error {
	return newError(KindEmptyField, command, FieldDescription, "Description is missing after 'desc/'")
}

// EmptyCategory reports a cat/ prefix with no value after it.
func EmptyCategory(command string) *Error {
	return newError(KindEmptyField, command, FieldCategory, "Category is missing after 'cat/'")
}

// InvalidCategory reports a category that breaks the naming rule.
func InvalidCategory(command, raw string) *Error {
	return newError(KindInvalidCategory, command, FieldCategory,
		"Category must start with a letter and be at most 20 letters, digits, spaces or hyphens: "+raw)
}

// MissingIndex reports an index command given no index.
func MissingIndex(command string) *Error {
	return newError(KindEmptyField, command, FieldIndex, fmt.Sprintf("Missing expense index after '%s' command", command))
}

// InvalidIndex reports an index that is not an integer. cause is the parse error.
func InvalidIndex(command, raw string, cause error) *Error {
	e := newError(KindInvalidFormat, command, FieldIndex, "Expense index must be an integer: "+raw)
	e.Err = cause
	return e
}

// IndexTooSmall reports an index below 1.
func IndexTooSmall(command string) *Error {
	return newError(KindOutOfRange, command, FieldIndex, "Expense index must be at least 1")
}

// IndexOutOfRange reports an index outside [1, size]. An empty store is
// reported as EmptyList instead.
func IndexOutOfRange(command string, index, size int) *Error {
	if size == 0 {
		return EmptyList(command)
	}
	return newError(KindOutOfRange, command, FieldIndex,
		fmt.Sprintf("Expense index must be between 1 and %d, but got %d", size, index))
}

// EmptyList reports an index command run against an empty store.
func EmptyList(command string) *Error {
	return newError(KindEmptyCollection, command, FieldNone, "No expenses available. Add some expenses first.")
}

// UnknownCommand reports an unrecognized keyword, or a blank line when word is empty.
func UnknownCommand(word string) *Error {
	if word == "" {
		return newError(KindUnknownCommand, "", FieldNone, "Please enter a command")
	}
	return newError(KindUnknownCommand, "", FieldNone, fmt.Sprintf("Unknown command: %s", word))
}

// ExtraArguments reports arguments passed to a command that takes none.
func ExtraArguments(command, rest string) *Error {
	return newError(KindExtraArguments, command, FieldNone,
		fmt.Sprintf("'%s' does not take any arguments, got: %s", command, rest))
}
