package parser

import "github.com/shopspring/decimal"

// Command keywords.
const (
	CmdAdd       = "add"
	CmdDelete    = "delete"
	CmdEdit      = "edit"
	CmdMark      = "mark"
	CmdUnmark    = "unmark"
	CmdSetBudget = "setbudget"
	CmdList      = "list"
	CmdFind      = "find"
	CmdSort      = "sort"
	CmdHelp      = "help"
	CmdBye       = "bye"
)

// Request is a fully validated command.
type Request interface {
	// Command returns the command keyword.
	Command() string
}

// Optional is an edit field that is either left unchanged or set to a value.
type Optional[T any] struct {
	value T
	set   bool
}

// Unchanged returns an Optional that requests no change.
func Unchanged[T any]() Optional[T] {
	return Optional[T]{}
}

// SetTo returns an Optional that replaces the field with v.
func SetTo[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether one was set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a new value was requested.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Or returns the new value if set, otherwise current.
func (o Optional[T]) Or(current T) T {
	if o.set {
		return o.value
	}
	return current
}

// AddRequest appends a new unpaid expense.
type AddRequest struct {
	Amount      decimal.Decimal
	Description string
	Category    string
}

// DeleteRequest removes the expense at Index.
type DeleteRequest struct {
	Index int
}

// EditRequest replaces the expense at Index, taking unset fields from the
// existing record.
type EditRequest struct {
	Index       int
	Amount      Optional[decimal.Decimal]
	Description Optional[string]
	Category    Optional[string]
}

// HasChanges reports whether any field was supplied.
func (r EditRequest) HasChanges() bool {
	return r.Amount.IsSet() || r.Description.IsSet() || r.Category.IsSet()
}

// MarkRequest flags the expense at Index as paid.
type MarkRequest struct {
	Index int
}

// UnmarkRequest clears the paid flag of the expense at Index.
type UnmarkRequest struct {
	Index int
}

// SetBudgetRequest replaces the budget.
type SetBudgetRequest struct {
	Amount decimal.Decimal
}

// FindField selects which expense field a search matches against.
type FindField string

const (
	FindByCategory    FindField = "category"
	FindByDescription FindField = "description"
)

// FindRequest searches one field for Term.
type FindRequest struct {
	By   FindField
	Term string
}

// ListRequest shows the budget summary and every expense.
type ListRequest struct{}

// SortRequest shows the expenses by amount, highest first.
type SortRequest struct{}

// HelpRequest shows the command menu.
type HelpRequest struct{}

// ByeRequest ends the session.
type ByeRequest struct{}

func (AddRequest) Command() string       { return CmdAdd }
func (DeleteRequest) Command() string    { return CmdDelete }
func (EditRequest) Command() string      { return CmdEdit }
func (MarkRequest) Command() string      { return CmdMark }
func (UnmarkRequest) Command() string    { return CmdUnmark }
func (SetBudgetRequest) Command() string { return CmdSetBudget }
func (FindRequest) Command() string      { return CmdFind }
func (ListRequest) Command() string      { return CmdList }
func (SortRequest) Command() string      { return CmdSort }
func (HelpRequest) Command() string      { return CmdHelp }
func (ByeRequest) Command() string       { return CmdBye }

// Mutates reports whether executing r changes the store.
func Mutates(r Request) bool {
	switch r.(type) {
	case AddRequest, DeleteRequest, EditRequest, MarkRequest, UnmarkRequest, SetBudgetRequest:
		return true
	default:
		return false
	}
}
