package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/category"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
	"fintrack/internal/uuid"
)

// fakeStore is an in-memory Store that can be told to fail writes.
type fakeStore struct {
	expenses []models.Expense
	budgets  map[category.Category]decimal.Decimal
	loadErr  error
	saveErr  error
	saves    int
}

func (s *fakeStore) Load() ([]models.Expense, map[category.Category]decimal.Decimal, error) {
	return s.expenses, s.budgets, s.loadErr
}

func (s *fakeStore) SaveExpenses(expenses []models.Expense) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.expenses = expenses
	s.saves++
	return nil
}

func (s *fakeStore) SaveBudgets(budgets map[category.Category]decimal.Decimal) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.budgets = budgets
	s.saves++
	return nil
}

func newExpense(t *testing.T, amount string, cat category.Category) models.Expense {
	t.Helper()

	return models.Expense{
		Base:     models.Base{ID: uuid.New(), CreatedAt: time.Now()},
		Amount:   testutil.Amount(t, amount),
		Category: cat,
		Date:     testutil.DaysAgo(1),
	}
}

func TestOpen(t *testing.T) {
	t.Run("empty medium yields empty ledger", func(t *testing.T) {
		l, err := Open(&fakeStore{})
		testutil.AssertNoError(t, err)

		if got := len(l.Expenses()); got != 0 {
			t.Errorf("expected no expenses, got %d", got)
		}
		if got := len(l.Budgets()); got != 0 {
			t.Errorf("expected no budgets, got %d", got)
		}
	})

	t.Run("load failure surfaces as internal error", func(t *testing.T) {
		_, err := Open(&fakeStore{loadErr: errors.New("disk gone")})
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})

	t.Run("persisted snapshot is loaded as-is", func(t *testing.T) {
		a := newExpense(t, "10.00", category.FoodAndDining)
		b := newExpense(t, "20.00", category.Shopping)
		store := &fakeStore{
			expenses: []models.Expense{a, b},
			budgets: map[category.Category]decimal.Decimal{
				category.Travel: testutil.Amount(t, "500.00"),
			},
		}

		l, err := Open(store)
		testutil.AssertNoError(t, err)

		expenses := l.Expenses()
		if len(expenses) != 2 || expenses[0].ID != a.ID || expenses[1].ID != b.ID {
			t.Errorf("expected snapshot order preserved, got %d expenses", len(expenses))
		}
		testutil.AssertDecimalEqual(t, l.Budgets()[category.Travel], "500.00")
	})
}

func TestInsert(t *testing.T) {
	t.Run("prepends newest first and writes through", func(t *testing.T) {
		store := &fakeStore{}
		l, err := Open(store)
		testutil.AssertNoError(t, err)

		first := newExpense(t, "10.00", category.FoodAndDining)
		second := newExpense(t, "20.00", category.Shopping)
		testutil.AssertNoError(t, l.Insert(first))
		testutil.AssertNoError(t, l.Insert(second))

		expenses := l.Expenses()
		if expenses[0].ID != second.ID || expenses[1].ID != first.ID {
			t.Errorf("expected newest first, got %s then %s", expenses[0].ID, expenses[1].ID)
		}
		if len(store.expenses) != 2 {
			t.Errorf("expected 2 persisted expenses, got %d", len(store.expenses))
		}
	})

	t.Run("failed write leaves memory unchanged", func(t *testing.T) {
		store := &fakeStore{}
		l, err := Open(store)
		testutil.AssertNoError(t, err)

		store.saveErr = errors.New("disk full")
		err = l.Insert(newExpense(t, "10.00", category.Other))
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		if got := len(l.Expenses()); got != 0 {
			t.Errorf("expected ledger unchanged after failed save, got %d expenses", got)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("replaces in place preserving order", func(t *testing.T) {
		a := newExpense(t, "10.00", category.FoodAndDining)
		b := newExpense(t, "20.00", category.Shopping)
		c := newExpense(t, "30.00", category.Travel)
		l, err := Open(&fakeStore{expenses: []models.Expense{a, b, c}})
		testutil.AssertNoError(t, err)

		changed := b
		changed.Amount = testutil.Amount(t, "99.00")
		testutil.AssertNoError(t, l.Update(changed))

		expenses := l.Expenses()
		if expenses[0].ID != a.ID || expenses[1].ID != b.ID || expenses[2].ID != c.ID {
			t.Error("expected record order preserved across update")
		}
		testutil.AssertDecimalEqual(t, expenses[1].Amount, "99.00")
	})

	t.Run("absent ID is an error not a no-op", func(t *testing.T) {
		l, err := Open(&fakeStore{})
		testutil.AssertNoError(t, err)

		err = l.Update(newExpense(t, "10.00", category.Other))
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes exactly one record", func(t *testing.T) {
		a := newExpense(t, "10.00", category.FoodAndDining)
		b := newExpense(t, "20.00", category.Shopping)
		l, err := Open(&fakeStore{expenses: []models.Expense{a, b}})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, l.Remove(a.ID))

		expenses := l.Expenses()
		if len(expenses) != 1 || expenses[0].ID != b.ID {
			t.Errorf("expected only %s to remain, got %d expenses", b.ID, len(expenses))
		}
	})

	t.Run("absent ID is an error", func(t *testing.T) {
		l, err := Open(&fakeStore{})
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, l.Remove(uuid.New()), "EXPENSE_NOT_FOUND")
	})

	t.Run("failed write keeps the record", func(t *testing.T) {
		a := newExpense(t, "10.00", category.FoodAndDining)
		store := &fakeStore{expenses: []models.Expense{a}}
		l, err := Open(store)
		testutil.AssertNoError(t, err)

		store.saveErr = errors.New("disk full")
		testutil.AssertAppError(t, l.Remove(a.ID), "INTERNAL_ERROR")

		if got := len(l.Expenses()); got != 1 {
			t.Errorf("expected record retained after failed save, got %d expenses", got)
		}
	})
}

func TestBudgetLimits(t *testing.T) {
	t.Run("set limit upserts and writes through", func(t *testing.T) {
		store := &fakeStore{}
		l, err := Open(store)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, l.SetLimit(category.FoodAndDining, testutil.Amount(t, "300.00")))
		testutil.AssertNoError(t, l.SetLimit(category.FoodAndDining, testutil.Amount(t, "350.00")))

		budgets := l.Budgets()
		if len(budgets) != 1 {
			t.Fatalf("expected 1 limit after upsert, got %d", len(budgets))
		}
		testutil.AssertDecimalEqual(t, budgets[category.FoodAndDining], "350.00")
		testutil.AssertDecimalEqual(t, store.budgets[category.FoodAndDining], "350.00")
	})

	t.Run("remove limit unsets the category", func(t *testing.T) {
		l, err := Open(&fakeStore{budgets: map[category.Category]decimal.Decimal{
			category.Travel: testutil.Amount(t, "500.00"),
		}})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, l.RemoveLimit(category.Travel))

		if _, ok := l.Budgets()[category.Travel]; ok {
			t.Error("expected limit removed")
		}
	})

	t.Run("removing an unset limit is an error", func(t *testing.T) {
		l, err := Open(&fakeStore{})
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, l.RemoveLimit(category.Travel), "BUDGET_LIMIT_NOT_FOUND")
	})
}

func TestReplace(t *testing.T) {
	t.Run("replace expenses swaps snapshot preserving order", func(t *testing.T) {
		l, err := Open(&fakeStore{expenses: []models.Expense{newExpense(t, "1.00", category.Other)}})
		testutil.AssertNoError(t, err)

		a := newExpense(t, "10.00", category.FoodAndDining)
		b := newExpense(t, "20.00", category.Shopping)
		testutil.AssertNoError(t, l.ReplaceExpenses([]models.Expense{a, b}))

		expenses := l.Expenses()
		if len(expenses) != 2 || expenses[0].ID != a.ID || expenses[1].ID != b.ID {
			t.Error("expected replacement snapshot in its fetched order")
		}
	})

	t.Run("replace budgets swaps the mapping", func(t *testing.T) {
		l, err := Open(&fakeStore{budgets: map[category.Category]decimal.Decimal{
			category.Other: testutil.Amount(t, "10.00"),
		}})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, l.ReplaceBudgets(map[category.Category]decimal.Decimal{
			category.Shopping: testutil.Amount(t, "150.00"),
		}))

		budgets := l.Budgets()
		if _, ok := budgets[category.Other]; ok {
			t.Error("expected old mapping discarded")
		}
		testutil.AssertDecimalEqual(t, budgets[category.Shopping], "150.00")
	})
}

func TestAccessorsReturnCopies(t *testing.T) {
	a := newExpense(t, "10.00", category.FoodAndDining)
	l, err := Open(&fakeStore{
		expenses: []models.Expense{a},
		budgets: map[category.Category]decimal.Decimal{
			category.FoodAndDining: testutil.Amount(t, "300.00"),
		},
	})
	testutil.AssertNoError(t, err)

	expenses := l.Expenses()
	expenses[0].Amount = testutil.Amount(t, "0.01")
	budgets := l.Budgets()
	budgets[category.FoodAndDining] = testutil.Amount(t, "0.01")

	testutil.AssertDecimalEqual(t, l.Expenses()[0].Amount, "10.00")
	testutil.AssertDecimalEqual(t, l.Budgets()[category.FoodAndDining], "300.00")
}
