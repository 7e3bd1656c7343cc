package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/category"
	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

// TestUserID returns a fresh user identifier, standing in for the subject
// claim the identity provider would issue.
func TestUserID() string {
	return uuid.New()
}

// Amount parses a decimal literal, failing the test on malformed input.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal literal %q: %v", s, err)
	}
	return d
}

// DaysAgo returns the calendar date the given number of days before now.
func DaysAgo(days int) models.Date {
	return models.DateOf(time.Now().AddDate(0, 0, -days))
}

// CreateTestExpense creates an expense with the given amount and date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, cat category.Category, amount string, date models.Date) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:   userID,
		Amount:   Amount(t, amount),
		Category: cat,
		Date:     date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudgetLimit creates a budget limit for the given category.
func CreateTestBudgetLimit(t *testing.T, db *gorm.DB, userID string, cat category.Category, amount string) *models.BudgetLimit {
	t.Helper()

	limit := &models.BudgetLimit{
		UserID:   userID,
		Category: cat,
		Amount:   Amount(t, amount),
	}
	if err := db.Create(limit).Error; err != nil {
		t.Fatalf("failed to create test budget limit: %v", err)
	}
	return limit
}
