package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/category"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// validateExpenseInput enforces the write-time invariants: a positive amount
// and a known category.
func validateExpenseInput(amount decimal.Decimal, cat category.Category) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if !cat.Valid() {
		return apperrors.ErrInvalidCategory
	}
	return nil
}

// CreateExpense creates a new expense for the user.
func (s *expenseService) CreateExpense(userID string, amount decimal.Decimal, cat category.Category, date models.Date, note string) (*models.Expense, error) {
	if err := validateExpenseInput(amount, cat); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:   userID,
		Amount:   amount,
		Category: cat,
		Date:     date,
		Note:     note,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetUserExpenses returns a paginated list of the user's expenses with
// optional category/date filters, newest first by default.
func (s *expenseService) GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	order := "date DESC, created_at DESC"
	if filter.SortBy == "amount" {
		order = "amount DESC"
	}

	var expenses []models.Expense
	if err := base.Order(order).Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAllUserExpenses returns the user's complete expense history, newest
// first. Reports and exports recompute from this full snapshot.
func (s *expenseService) GetAllUserExpenses(userID string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetExpenseByID returns an expense by ID if it belongs to the user.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense fully replaces an expense's fields except its ID.
func (s *expenseService) UpdateExpense(userID, expenseID string, amount decimal.Decimal, cat category.Category, date models.Date, note string) (*models.Expense, error) {
	if err := validateExpenseInput(amount, cat); err != nil {
		return nil, err
	}

	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"amount":   amount,
		"category": cat,
		"date":     date,
		"note":     note,
	}
	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense soft-deletes an expense. An absent ID is an explicit
// not-found error, never a silent no-op.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
