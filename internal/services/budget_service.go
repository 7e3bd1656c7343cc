package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/category"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// budgetService handles budget-limit business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// GetUserLimits returns the user's budget mapping. Categories without a row
// are simply absent, which callers must treat as "no limit set".
func (s *budgetService) GetUserLimits(userID string) (map[category.Category]decimal.Decimal, error) {
	var rows []models.BudgetLimit
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	limits := make(map[category.Category]decimal.Decimal, len(rows))
	for _, row := range rows {
		limits[row.Category] = row.Amount
	}
	return limits, nil
}

// UpsertLimit sets one category's monthly cap, creating or overwriting the
// single row for that (user, category) pair.
func (s *budgetService) UpsertLimit(userID string, cat category.Category, amount decimal.Decimal) (*models.BudgetLimit, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidLimit
	}
	if !cat.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	var limit models.BudgetLimit
	err := s.db.Where("user_id = ? AND category = ?", userID, cat).First(&limit).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		limit = models.BudgetLimit{UserID: userID, Category: cat, Amount: amount}
		if err := s.db.Create(&limit).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		if err := s.db.Model(&limit).Update("amount", amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &limit, nil
}

// RemoveLimit unsets one category's monthly cap.
func (s *budgetService) RemoveLimit(userID string, cat category.Category) error {
	var limit models.BudgetLimit
	if err := s.db.Where("user_id = ? AND category = ?", userID, cat).First(&limit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetLimitNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&limit).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
