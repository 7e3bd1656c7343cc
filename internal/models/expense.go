package models

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/category"
)

// Expense represents one dated monetary outflow. Date is the user-assigned
// expense date; the creation instant lives in Base.CreatedAt and is used only
// for default ordering and ID generation.
type Expense struct {
	Base
	UserID   string            `gorm:"type:uuid;not null;index" json:"-"`
	Amount   decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Category category.Category `gorm:"not null;index" json:"category"`
	Date     Date              `gorm:"not null;index" json:"date"`
	Note     string            `gorm:"size:500" json:"note,omitempty"`
}
