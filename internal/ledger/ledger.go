// Package ledger holds the session-scoped record store: the ordered expense
// collection and the category-to-limit budget mapping. One Ledger is
// constructed per authenticated session and torn down with it; there is no
// ambient singleton.
package ledger

import (
	"sync"

	"github.com/shopspring/decimal"

	"fintrack/internal/category"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// Store is the external persistence medium behind the ledger. Every mutation
// writes the full snapshot through synchronously; there is no diffing or
// debouncing, which keeps the persisted copy audit-friendly at
// personal-finance volumes.
type Store interface {
	Load() ([]models.Expense, map[category.Category]decimal.Decimal, error)
	SaveExpenses([]models.Expense) error
	SaveBudgets(map[category.Category]decimal.Decimal) error
}

// Ledger is the in-memory record store. All accessors return copies so
// callers can never mutate the owned state behind its back.
type Ledger struct {
	mu       sync.RWMutex
	store    Store
	expenses []models.Expense
	budgets  map[category.Category]decimal.Decimal
}

// Open constructs a Ledger and loads the persisted snapshot exactly once.
// A missing or empty medium yields an empty ledger; no sample data is
// seeded, so deleted records can never resurface.
func Open(store Store) (*Ledger, error) {
	expenses, budgets, err := store.Load()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	if budgets == nil {
		budgets = make(map[category.Category]decimal.Decimal)
	}
	return &Ledger{store: store, expenses: expenses, budgets: budgets}, nil
}

// Expenses returns a copy of the ordered expense snapshot.
func (l *Ledger) Expenses() []models.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Budgets returns a copy of the budget-limit mapping.
func (l *Ledger) Budgets() map[category.Category]decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[category.Category]decimal.Decimal, len(l.budgets))
	for k, v := range l.budgets {
		out[k] = v
	}
	return out
}

// Insert prepends a new expense, newest first, and writes through.
func (l *Ledger) Insert(e models.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]models.Expense, 0, len(l.expenses)+1)
	next = append(next, e)
	next = append(next, l.expenses...)
	if err := l.store.SaveExpenses(next); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	l.expenses = next
	return nil
}

// Update replaces the expense with a matching ID in place; the position of
// every other record is preserved. Absent IDs are an error, not a no-op.
func (l *Ledger) Update(e models.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.expenses {
		if l.expenses[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrExpenseNotFound
	}

	next := make([]models.Expense, len(l.expenses))
	copy(next, l.expenses)
	next[idx] = e
	if err := l.store.SaveExpenses(next); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	l.expenses = next
	return nil
}

// Remove deletes the expense with the given ID and writes through.
func (l *Ledger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrExpenseNotFound
	}

	next := make([]models.Expense, 0, len(l.expenses)-1)
	next = append(next, l.expenses[:idx]...)
	next = append(next, l.expenses[idx+1:]...)
	if err := l.store.SaveExpenses(next); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	l.expenses = next
	return nil
}

// SetLimit upserts one category's monthly limit and writes through.
func (l *Ledger) SetLimit(cat category.Category, limit decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make(map[category.Category]decimal.Decimal, len(l.budgets)+1)
	for k, v := range l.budgets {
		next[k] = v
	}
	next[cat] = limit
	if err := l.store.SaveBudgets(next); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	l.budgets = next
	return nil
}

// RemoveLimit unsets one category's monthly limit and writes through.
func (l *Ledger) RemoveLimit(cat category.Category) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.budgets[cat]; !ok {
		return apperrors.ErrBudgetLimitNotFound
	}
	next := make(map[category.Category]decimal.Decimal, len(l.budgets))
	for k, v := range l.budgets {
		if k != cat {
			next[k] = v
		}
	}
	if err := l.store.SaveBudgets(next); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	l.budgets = next
	return nil
}

// ReplaceExpenses swaps in a freshly fetched expense snapshot, preserving
// its order, and writes through.
func (l *Ledger) ReplaceExpenses(expenses []models.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]models.Expense, len(expenses))
	copy(next, expenses)
	if err := l.store.SaveExpenses(next); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	l.expenses = next
	return nil
}

// ReplaceBudgets swaps in a freshly fetched budget mapping and writes through.
func (l *Ledger) ReplaceBudgets(budgets map[category.Category]decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make(map[category.Category]decimal.Decimal, len(budgets))
	for k, v := range budgets {
		next[k] = v
	}
	if err := l.store.SaveBudgets(next); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	l.budgets = next
	return nil
}
