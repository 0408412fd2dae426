// Package ui renders command results as plain text.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cashbuddy-dev/cashbuddy/internal/failure"
	"github.com/cashbuddy-dev/cashbuddy/internal/model"
	"github.com/cashbuddy-dev/cashbuddy/internal/parser"
)

const (
	separator = "---------------------------------------------------------------"
	barWidth  = 20
)

var usage = map[string]string{
	parser.CmdAdd:       "add a/AMOUNT desc/DESCRIPTION [cat/CATEGORY]",
	parser.CmdDelete:    "delete EXPENSE_INDEX",
	parser.CmdEdit:      "edit id/EXPENSE_INDEX [a/AMOUNT] [desc/DESCRIPTION] [cat/CATEGORY]",
	parser.CmdMark:      "mark EXPENSE_INDEX",
	parser.CmdUnmark:    "unmark EXPENSE_INDEX",
	parser.CmdSetBudget: "setbudget a/AMOUNT",
	parser.CmdFind:      "find cat/CATEGORY or find desc/DESCRIPTION",
	parser.CmdList:      "list",
	parser.CmdSort:      "sort",
	parser.CmdHelp:      "help",
	parser.CmdBye:       "bye",
}

var menu = []struct{ label, command string }{
	{"Add an expense:", parser.CmdAdd},
	{"Edit an expense:", parser.CmdEdit},
	{"Set a budget:", parser.CmdSetBudget},
	{"List all expenses & statistics:", parser.CmdList},
	{"Find expenses:", parser.CmdFind},
	{"Mark an expense as paid:", parser.CmdMark},
	{"Mark an expense as unpaid:", parser.CmdUnmark},
	{"Delete an expense:", parser.CmdDelete},
	{"Sort all expenses in descending order:", parser.CmdSort},
	{"Show this menu:", parser.CmdHelp},
	{"Exit the application:", parser.CmdBye},
}

// Summary is the budget state shown by list.
type Summary struct {
	Budget     decimal.Decimal
	TotalSpent decimal.Decimal
	Remaining  decimal.Decimal
	Expenses   []model.Expense
}

// Renderer writes user-facing output.
type Renderer struct {
	w io.Writer
}

// New returns a Renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) println(a ...any) {
	fmt.Fprintln(r.w, a...)
}

func (r *Renderer) printf(format string, a ...any) {
	fmt.Fprintf(r.w, format, a...)
}

// Separator prints the line that frames each command's output.
func (r *Renderer) Separator() {
	r.println(separator)
}

// Welcome prints the banner followed by the menu.
func (r *Renderer) Welcome() {
	r.println("Welcome to CashBuddy")
	r.Menu()
}

// Menu prints every command with its usage.
func (r *Renderer) Menu() {
	for _, item := range menu {
		r.printf("%-40s %s\n", item.label, usage[item.command])
	}
}

// Goodbye prints the farewell shown for bye.
func (r *Renderer) Goodbye() {
	r.println("Bye. Hope to see you again soon!")
}

// Prompt prints the input prompt without a newline.
func (r *Renderer) Prompt() {
	fmt.Fprint(r.w, "> ")
}

// NewExpense confirms an add.
func (r *Renderer) NewExpense(e model.Expense) {
	r.println("New Expense:")
	r.println(e.String())
}

// DeletedExpense confirms a delete.
func (r *Renderer) DeletedExpense(e model.Expense) {
	r.println("Deleted Expense:")
	r.println(e.String())
}

// EditedExpense confirms an edit that changed at least one field.
func (r *Renderer) EditedExpense(e model.Expense) {
	r.println("Edited Expense:")
	r.println(e.String())
}

// EmptyEdit reports an edit that named no fields.
func (r *Renderer) EmptyEdit(e model.Expense) {
	r.println("No changes were made to the expense:")
	r.println(e.String())
}

// MarkedExpense confirms a mark.
func (r *Renderer) MarkedExpense(e model.Expense) {
	r.println("Marked Expense:")
	r.println(e.String())
}

// UnmarkedExpense confirms an unmark.
func (r *Renderer) UnmarkedExpense(e model.Expense) {
	r.println("Unmarked Expense:")
	r.println(e.String())
}

// NewBudget confirms a setbudget.
func (r *Renderer) NewBudget(budget decimal.Decimal) {
	r.printf("Your total budget is now $%s.\n", budget.StringFixed(2))
}

// BudgetStatus prints an alert for every status except OK.
func (r *Renderer) BudgetStatus(status model.BudgetStatus, remaining decimal.Decimal) {
	switch status {
	case model.BudgetExceeded:
		r.printf("Alert: You have exceeded your budget! Remaining balance: $%s\n", remaining.StringFixed(2))
	case model.BudgetEqual:
		r.println("Alert: You have used your entire budget. Remaining balance: $0.00")
	case model.BudgetNear:
		r.printf("Alert: You are close to your budget. Remaining balance: $%s\n", remaining.StringFixed(2))
	}
}

// List prints the budget figures, a usage bar and the numbered expenses.
func (r *Renderer) List(s Summary) {
	r.printf("Budget set: $%s\n", s.Budget.StringFixed(2))
	r.printf("Total expenses: $%s\n", s.TotalSpent.StringFixed(2))
	r.printf("Remaining balance: $%s\n", s.Remaining.StringFixed(2))
	if s.Budget.IsPositive() {
		r.printf("Budget used: %s\n", ProgressBar(s.TotalSpent, s.Budget))
	}

	if len(s.Expenses) == 0 {
		r.println("No expenses added so far.")
		r.println("Use: " + usage[parser.CmdAdd])
		return
	}
	r.println("Here is the list of expenses:")
	r.numbered(s.Expenses)
}

// Sorted prints the expenses already ordered by the store.
func (r *Renderer) Sorted(expenses []model.Expense) {
	if len(expenses) == 0 {
		r.println("No expenses to sort.")
		return
	}
	r.println("Here are your expenses sorted by amount (highest first):")
	r.numbered(expenses)
}

// Found prints the result of a find on the given field.
func (r *Renderer) Found(expenses []model.Expense, by parser.FindField, term string) {
	if len(expenses) == 0 {
		r.printf("No expenses found matching %s: %s\n", by, term)
		return
	}
	r.printf("Found %d expense(s) matching %s: %s\n", len(expenses), by, term)
	r.numbered(expenses)
}

func (r *Renderer) numbered(expenses []model.Expense) {
	for i, e := range expenses {
		r.printf("%d. %s\n", i+1, e)
	}
}

// ProgressBar renders spent/budget as a fixed-width bar, e.g.
// "[##########----------] 50.00%". Usage above 100% fills the bar.
func ProgressBar(spent, budget decimal.Decimal) string {
	if !budget.IsPositive() {
		return ""
	}
	pct := spent.Div(budget).Mul(decimal.NewFromInt(100))
	if pct.IsNegative() {
		pct = decimal.Zero
	}

	filled := pct.Mul(decimal.NewFromInt(barWidth)).Div(decimal.NewFromInt(100)).IntPart()
	filled = min(max(filled, 0), barWidth)

	return fmt.Sprintf("[%s%s] %s%%",
		strings.Repeat("#", int(filled)),
		strings.Repeat("-", barWidth-int(filled)),
		pct.StringFixed(2))
}

// Error prints the failure message followed by a usage hint chosen from the
// failure's kind and command.
func (r *Renderer) Error(err error) {
	r.println(err.Error())

	var fe *failure.Error
	if !errors.As(err, &fe) {
		return
	}
	if hint := Hint(fe); hint != "" {
		r.println(hint)
	}
}

// Hint returns the usage reminder for a failure, or "".
func Hint(fe *failure.Error) string {
	switch fe.Kind {
	case failure.KindUnknownCommand:
		return "Type 'help' to see the available commands."
	case failure.KindEmptyCollection:
		return "Use: " + usage[parser.CmdAdd]
	case failure.KindInvalidCategory:
		return "Categories start with a letter and may contain up to 20 letters, digits, spaces or hyphens."
	}

	if u, ok := usage[fe.Command]; ok {
		return "Invalid format. Use: " + u
	}
	return ""
}
