package models

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/category"
)

// BudgetLimit is a user-set monthly spending cap for one category.
// Absence of a row means "no limit set", which is distinct from a limit of
// zero; zero limits are rejected at write time.
type BudgetLimit struct {
	Base
	UserID   string            `gorm:"type:uuid;not null;uniqueIndex:idx_budget_user_category" json:"-"`
	Category category.Category `gorm:"not null;uniqueIndex:idx_budget_user_category" json:"category"`
	Amount   decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"amount"`
}
