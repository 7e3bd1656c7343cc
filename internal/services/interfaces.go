package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/alert"
	"fintrack/internal/category"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/report"
)

// ExpenseFilter holds optional read-side parameters for listing expenses.
// Filtering and sorting only shape the returned list; they never mutate
// stored data.
type ExpenseFilter struct {
	Category *category.Category
	FromDate *models.Date
	ToDate   *models.Date
	// SortBy is "date" (default) or "amount"; both descending.
	SortBy string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID string, amount decimal.Decimal, cat category.Category, date models.Date, note string) (*models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetAllUserExpenses(userID string) ([]models.Expense, error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, amount decimal.Decimal, cat category.Category, date models.Date, note string) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
}

// BudgetServicer defines the contract for budget-limit business logic.
type BudgetServicer interface {
	GetUserLimits(userID string) (map[category.Category]decimal.Decimal, error)
	UpsertLimit(userID string, cat category.Category, amount decimal.Decimal) (*models.BudgetLimit, error)
	RemoveLimit(userID string, cat category.Category) error
}

// ReportServicer derives spending statistics and budget alerts from the
// user's expense history.
type ReportServicer interface {
	GetSummary(userID string, now time.Time) (*report.Summary, error)
	GetMonthlyTrend(userID string, now time.Time) ([]report.TrendPoint, error)
	GetBudgetComparison(userID string, now time.Time) ([]report.BudgetRow, error)
	GetAlerts(userID string, now time.Time) ([]alert.Alert, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
