package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashbuddy-dev/cashbuddy/internal/model"
)

func TestSnapshotRestore(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetBudget(dec("120")))
	require.NoError(t, s.Add(expense("30", "Dinner", "Food")))
	require.NoError(t, s.Add(expense("15.75", "Movie", "Fun")))
	_, err := s.Mark(2)
	require.NoError(t, err)

	restored, err := Restore(s.Snapshot())
	require.NoError(t, err)

	assert.True(t, restored.Budget().Equal(dec("120")))
	assert.True(t, restored.TotalSpent().Equal(dec("15.75")))
	assert.True(t, restored.RemainingBalance().Equal(dec("104.25")))
	assert.Equal(t, s.List(), restored.List())
}

func TestRestore_Empty(t *testing.T) {
	s, err := Restore(Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Budget().IsZero())
}

func TestRestore_RejectsInvalidExpense(t *testing.T) {
	_, err := Restore(Snapshot{Expenses: []model.Expense{
		expense("5", "ok", "A"),
		expense("-1", "bad", "A"),
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restoring expense 2")
}

func TestRestore_RejectsNegativeBudget(t *testing.T) {
	_, err := Restore(Snapshot{Budget: dec("-3")})
	require.Error(t, err)
}

func TestSnapshot_IsDetached(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(expense("5", "Tea", "Drinks")))

	snap := s.Snapshot()
	snap.Expenses[0].Paid = true
	require.NoError(t, s.CheckInvariants())

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.False(t, got.Paid)
}

func TestRestore_RejectsOutOfRangeBudget(t *testing.T) {
	_, err := Restore(Snapshot{Budget: dec("1e2147483647")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restoring budget")
}
