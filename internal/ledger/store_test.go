package ledger

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashbuddy-dev/cashbuddy/internal/failure"
	"github.com/cashbuddy-dev/cashbuddy/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(amount, desc, category string) model.Expense {
	return model.NewExpense(dec(amount), desc, category)
}

func requireInvariants(t *testing.T, s *Store) {
	t.Helper()
	require.NoError(t, s.CheckInvariants())
	assert.True(t, s.RemainingBalance().Equal(s.Budget().Sub(s.TotalSpent())))
	assert.False(t, s.TotalSpent().IsNegative())
}

func TestAdd_DefaultsUnpaid(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("12.50", "Lunch", model.DefaultCategory)))

	require.Equal(t, 1, s.Len())
	got, err := s.Get(1)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("12.50")))
	assert.Equal(t, "Lunch", got.Description)
	assert.Equal(t, model.DefaultCategory, got.Category)
	assert.False(t, got.Paid)
	assert.True(t, s.TotalSpent().IsZero())
	requireInvariants(t, s)
}

func TestAdd_RejectsInvalid(t *testing.T) {
	s := NewStore()

	tests := []struct {
		name string
		e    model.Expense
		kind failure.Kind
	}{
		{"negative", expense("-5", "Bad", "Food"), failure.KindOutOfRange},
		{"zero", expense("0", "Bad", "Food"), failure.KindOutOfRange},
		{"too large", expense("1e2147483647", "Bad", "Food"), failure.KindOutOfRange},
		{"too precise", expense("1e-20", "Bad", "Food"), failure.KindInvalidFormat},
		{"blank description", expense("5", "  ", "Food"), failure.KindEmptyField},
		{"blank category", expense("5", "Tea", ""), failure.KindEmptyField},
	}
	for _, tt := range tests {
		err := s.Add(tt.e)
		assert.Equal(t, tt.kind, failure.KindOf(err), tt.name)
	}
	assert.Equal(t, 0, s.Len(), "store must stay empty")
	requireInvariants(t, s)
}

func TestDelete_Renumbers(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("1", "one", "A")))
	require.NoError(t, s.Add(expense("2", "two", "A")))
	require.NoError(t, s.Add(expense("3", "three", "A")))

	removed, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "two", removed.Description)

	require.Equal(t, 2, s.Len())
	got, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "three", got.Description)
}

func TestDelete_PaidRebalances(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetBudget(dec("200")))
	require.NoError(t, s.Add(expense("40", "Groceries", "Food")))
	_, err := s.Mark(1)
	require.NoError(t, err)

	assert.True(t, s.TotalSpent().Equal(dec("40")))
	assert.True(t, s.RemainingBalance().Equal(dec("160")))

	_, err = s.Delete(1)
	require.NoError(t, err)
	assert.True(t, s.TotalSpent().IsZero())
	assert.True(t, s.RemainingBalance().Equal(dec("200")))
	requireInvariants(t, s)
}

func TestIndexErrors(t *testing.T) {
	s := NewStore()

	_, err := s.Delete(1)
	assert.Equal(t, failure.KindEmptyCollection, failure.KindOf(err))
	_, err = s.Mark(1)
	assert.Equal(t, failure.KindEmptyCollection, failure.KindOf(err))

	require.NoError(t, s.Add(expense("5", "Tea", "Drinks")))

	for _, idx := range []int{0, -1, 2, 100} {
		_, err = s.Get(idx)
		assert.Equal(t, failure.KindOutOfRange, failure.KindOf(err), "index %d", idx)
		_, err = s.Unmark(idx)
		assert.Equal(t, failure.KindOutOfRange, failure.KindOf(err), "index %d", idx)
		_, err = s.Replace(idx, expense("1", "x", "y"))
		assert.Equal(t, failure.KindOutOfRange, failure.KindOf(err), "index %d", idx)
	}

	_, err = s.Delete(2)
	require.Error(t, err)
	assert.Equal(t, "Expense index must be between 1 and 1, but got 2", err.Error())
	assert.Equal(t, 1, s.Len())
}

func TestMark_Idempotent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetBudget(dec("50")))
	require.NoError(t, s.Add(expense("20", "Taxi", "Transport")))

	first, err := s.Mark(1)
	require.NoError(t, err)
	assert.True(t, first.Paid)
	total := s.TotalSpent()

	second, err := s.Mark(1)
	require.NoError(t, err)
	assert.True(t, second.Paid)
	assert.True(t, s.TotalSpent().Equal(total), "second mark must not add again")
	requireInvariants(t, s)
}

func TestUnmark_Idempotent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("20", "Taxi", "Transport")))

	got, err := s.Unmark(1)
	require.NoError(t, err)
	assert.False(t, got.Paid)
	assert.True(t, s.TotalSpent().IsZero())

	_, err = s.Mark(1)
	require.NoError(t, err)
	_, err = s.Unmark(1)
	require.NoError(t, err)
	_, err = s.Unmark(1)
	require.NoError(t, err)
	assert.True(t, s.TotalSpent().IsZero())
	requireInvariants(t, s)
}

func TestReplace_CarriesPaidFlag(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetBudget(dec("100")))
	require.NoError(t, s.Add(expense("30", "Dinner", "Food")))
	_, err := s.Mark(1)
	require.NoError(t, err)

	got, err := s.Replace(1, expense("45", "Dinner party", "Food"))
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.True(t, s.TotalSpent().Equal(dec("45")))
	assert.True(t, s.RemainingBalance().Equal(dec("55")))

	stored, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Dinner party", stored.Description)
	assert.True(t, stored.Paid)
	requireInvariants(t, s)
}

func TestReplace_UnpaidLeavesTotals(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("30", "Dinner", "Food")))

	// A paid flag on the replacement is ignored; the old flag wins.
	repl := expense("99", "Dinner", "Food")
	repl.Paid = true
	got, err := s.Replace(1, repl)
	require.NoError(t, err)
	assert.False(t, got.Paid)
	assert.True(t, s.TotalSpent().IsZero())
	requireInvariants(t, s)
}

func TestReplace_RejectsInvalid(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("30", "Dinner", "Food")))

	_, err := s.Replace(1, expense("0", "Dinner", "Food"))
	assert.Equal(t, failure.KindOutOfRange, failure.KindOf(err))

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("30")), "store must be unchanged")
}

func TestSetBudget(t *testing.T) {
	s := NewStore()
	assert.True(t, s.Budget().IsZero())

	require.NoError(t, s.SetBudget(dec("100")))
	assert.True(t, s.RemainingBalance().Equal(dec("100")))

	err := s.SetBudget(dec("0"))
	assert.Equal(t, failure.KindOutOfRange, failure.KindOf(err))
	err = s.SetBudget(dec("-1"))
	assert.Equal(t, failure.KindOutOfRange, failure.KindOf(err))
	err = s.SetBudget(dec("1e2147483647"))
	assert.Equal(t, failure.KindOutOfRange, failure.KindOf(err))
	assert.True(t, s.Budget().Equal(dec("100")))
	requireInvariants(t, s)
}

func TestBudgetStatus_Near(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetBudget(dec("100")))
	require.NoError(t, s.Add(expense("95", "Rent share", "Housing")))
	assert.Equal(t, model.BudgetOK, s.BudgetStatus(), "unpaid expenses do not count")

	_, err := s.Mark(1)
	require.NoError(t, err)
	assert.True(t, s.RemainingBalance().Equal(dec("5")))
	assert.Equal(t, model.BudgetNear, s.BudgetStatus())
}

func TestBudgetStatus_Transitions(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetBudget(dec("50")))
	require.NoError(t, s.Add(expense("50", "Concert", "Fun")))
	require.NoError(t, s.Add(expense("10", "Snacks", "Food")))

	_, err := s.Mark(1)
	require.NoError(t, err)
	assert.Equal(t, model.BudgetEqual, s.BudgetStatus())

	_, err = s.Mark(2)
	require.NoError(t, err)
	assert.Equal(t, model.BudgetExceeded, s.BudgetStatus())
	assert.True(t, s.RemainingBalance().Equal(dec("-10")))

	_, err = s.Unmark(1)
	require.NoError(t, err)
	assert.Equal(t, model.BudgetOK, s.BudgetStatus(), "no memory of earlier alerts")
}

func TestBudgetStatus_CustomThreshold(t *testing.T) {
	s := NewStore(WithAlertThreshold(dec("25")))
	require.NoError(t, s.SetBudget(dec("100")))
	require.NoError(t, s.Add(expense("80", "Shoes", "Clothes")))
	_, err := s.Mark(1)
	require.NoError(t, err)
	assert.Equal(t, model.BudgetNear, s.BudgetStatus())
}

func TestSorted_StableDescending(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("5", "first five", "A")))
	require.NoError(t, s.Add(expense("10", "ten", "A")))
	require.NoError(t, s.Add(expense("5", "second five", "A")))

	sorted := s.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, "ten", sorted[0].Description)
	assert.Equal(t, "first five", sorted[1].Description)
	assert.Equal(t, "second five", sorted[2].Description)

	// Store order is untouched.
	list := s.List()
	assert.Equal(t, "first five", list[0].Description)
	assert.Equal(t, "ten", list[1].Description)
}

func TestSorted_Empty(t *testing.T) {
	assert.Empty(t, NewStore().Sorted())
}

func TestList_IsACopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("5", "Tea", "Drinks")))

	list := s.List()
	list[0].Paid = true
	list[0].Description = "changed"

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.False(t, got.Paid)
	assert.Equal(t, "Tea", got.Description)
	requireInvariants(t, s)
}

func TestFindByCategory(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("10", "Burger", "Food")))
	require.NoError(t, s.Add(expense("20", "Hall", "Venue")))
	require.NoError(t, s.Add(expense("5", "Chips", "food-extra")))

	found, err := s.FindByCategory("Food")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Burger", found[0].Description)
	assert.Equal(t, "Chips", found[1].Description)

	found, err = s.FindByCategory("  VEN ")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = s.FindByCategory("Travel")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = s.FindByCategory("   ")
	assert.Equal(t, failure.KindEmptyField, failure.KindOf(err))
}

func TestFindByDescription(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("10", "Grab to work", "Transport")))
	require.NoError(t, s.Add(expense("12", "Lunch", "Food")))
	require.NoError(t, s.Add(expense("8", "grab home", "Transport")))

	found, err := s.FindByDescription("GRAB")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Grab to work", found[0].Description)
	assert.Equal(t, "grab home", found[1].Description)

	_, err = s.FindByDescription("")
	assert.Equal(t, failure.KindEmptyField, failure.KindOf(err))
}

func TestDeleteThenReAdd_IndexIsPositional(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("1", "a", "X")))
	require.NoError(t, s.Add(expense("2", "b", "X")))
	require.NoError(t, s.Add(expense("3", "c", "X")))

	removed, err := s.Delete(2)
	require.NoError(t, err)
	_, err = s.Delete(1)
	require.NoError(t, err)

	require.NoError(t, s.Add(removed))
	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[1].Description, "re-added expense goes to the end, not back to index 2")
}

func TestRandomOperations_KeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	s := NewStore()

	amounts := []string{"0.01", "1.10", "2.25", "10", "19.99", "100.05"}
	for i := 0; i < 2000; i++ {
		idx := 1
		if s.Len() > 0 {
			idx = rng.IntN(s.Len()+1) + 1 // sometimes out of range
		}

		switch rng.IntN(6) {
		case 0, 1:
			_ = s.Add(expense(amounts[rng.IntN(len(amounts))], "item", "Misc"))
		case 2:
			_, _ = s.Delete(idx)
		case 3:
			_, _ = s.Mark(idx)
		case 4:
			_, _ = s.Unmark(idx)
		case 5:
			_, _ = s.Replace(idx, expense(amounts[rng.IntN(len(amounts))], "edited", "Misc"))
		}
		if rng.IntN(20) == 0 {
			_ = s.SetBudget(dec(amounts[rng.IntN(len(amounts))]))
		}

		require.NoError(t, s.CheckInvariants(), "after step %d", i)
	}
}
