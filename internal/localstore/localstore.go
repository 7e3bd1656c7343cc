// Package localstore persists the ledger snapshot to two JSON documents on
// disk, the local-mode analogue of the two string-keyed browser storage
// entries: one for the expense sequence, one for the budget mapping.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"fintrack/internal/category"
	"fintrack/internal/models"
)

const (
	expensesFile = "expenses.json"
	budgetsFile  = "budget_limits.json"
)

// Store is a file-backed ledger.Store rooted at a data directory.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a Store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load reads both documents. Missing files yield empty state rather than an
// error, so a fresh directory behaves like a fresh session.
func (s *Store) Load() ([]models.Expense, map[category.Category]decimal.Decimal, error) {
	var expenses []models.Expense
	if err := s.read(expensesFile, &expenses); err != nil {
		return nil, nil, err
	}

	var budgets map[category.Category]decimal.Decimal
	if err := s.read(budgetsFile, &budgets); err != nil {
		return nil, nil, err
	}

	return expenses, budgets, nil
}

// SaveExpenses writes the full expense sequence, order preserved.
func (s *Store) SaveExpenses(expenses []models.Expense) error {
	return s.write(expensesFile, expenses)
}

// SaveBudgets writes the full budget mapping.
func (s *Store) SaveBudgets(budgets map[category.Category]decimal.Decimal) error {
	return s.write(budgetsFile, budgets)
}

func (s *Store) read(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// write replaces the document atomically so a crash mid-write never leaves a
// truncated snapshot behind.
func (s *Store) write(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
