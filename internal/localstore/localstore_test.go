package localstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/category"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
	"fintrack/internal/uuid"
)

func newExpense(t *testing.T, amount string, cat category.Category, date models.Date) models.Expense {
	t.Helper()

	return models.Expense{
		Base:     models.Base{ID: uuid.New(), CreatedAt: time.Now().UTC().Truncate(time.Second)},
		Amount:   testutil.Amount(t, amount),
		Category: cat,
		Date:     date,
		Note:     "lunch",
	}
}

func TestLoadMissingFiles(t *testing.T) {
	store, err := New(t.TempDir())
	testutil.AssertNoError(t, err)

	expenses, budgets, err := store.Load()
	testutil.AssertNoError(t, err)

	if expenses != nil {
		t.Errorf("expected nil expenses for a fresh directory, got %d", len(expenses))
	}
	if budgets != nil {
		t.Errorf("expected nil budgets for a fresh directory, got %d", len(budgets))
	}
}

func TestExpenseRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	testutil.AssertNoError(t, err)

	a := newExpense(t, "45.50", category.FoodAndDining, models.NewDate(2026, time.March, 13))
	b := newExpense(t, "12.00", category.Transportation, models.NewDate(2026, time.March, 10))
	testutil.AssertNoError(t, store.SaveExpenses([]models.Expense{a, b}))

	expenses, _, err := store.Load()
	testutil.AssertNoError(t, err)

	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(expenses))
	}
	if expenses[0].ID != a.ID || expenses[1].ID != b.ID {
		t.Error("expected persisted order preserved")
	}
	testutil.AssertDecimalEqual(t, expenses[0].Amount, "45.50")
	if expenses[0].Category != category.FoodAndDining {
		t.Errorf("expected category %q, got %q", category.FoodAndDining, expenses[0].Category)
	}
	if !expenses[0].Date.Equal(a.Date.Time) {
		t.Errorf("expected date %s, got %s", a.Date, expenses[0].Date)
	}
	if expenses[0].Note != "lunch" {
		t.Errorf("expected note preserved, got %q", expenses[0].Note)
	}
}

func TestBudgetRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	testutil.AssertNoError(t, err)

	in := map[category.Category]decimal.Decimal{
		category.FoodAndDining: testutil.Amount(t, "300.00"),
		category.Travel:        testutil.Amount(t, "500.00"),
	}
	testutil.AssertNoError(t, store.SaveBudgets(in))

	_, budgets, err := store.Load()
	testutil.AssertNoError(t, err)

	if len(budgets) != 2 {
		t.Fatalf("expected 2 limits, got %d", len(budgets))
	}
	testutil.AssertDecimalEqual(t, budgets[category.FoodAndDining], "300.00")
	testutil.AssertDecimalEqual(t, budgets[category.Travel], "500.00")
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	store, err := New(t.TempDir())
	testutil.AssertNoError(t, err)

	a := newExpense(t, "10.00", category.Other, models.NewDate(2026, time.March, 1))
	testutil.AssertNoError(t, store.SaveExpenses([]models.Expense{a}))
	testutil.AssertNoError(t, store.SaveExpenses([]models.Expense{}))

	expenses, _, err := store.Load()
	testutil.AssertNoError(t, err)

	if len(expenses) != 0 {
		t.Errorf("expected deleted records to stay gone, got %d", len(expenses))
	}
}

func TestNewCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "fintrack")

	_, err := New(dir)
	testutil.AssertNoError(t, err)

	info, err := os.Stat(dir)
	testutil.AssertNoError(t, err)
	if !info.IsDir() {
		t.Error("expected data directory to be created")
	}
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, store.SaveExpenses([]models.Expense{
		newExpense(t, "10.00", category.Other, models.NewDate(2026, time.March, 1)),
	}))

	entries, err := os.ReadDir(dir)
	testutil.AssertNoError(t, err)
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}
