// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fintrack/internal/category"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("sort_field", validateSortField)
	}
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return category.Category(fl.Field().String()).Valid()
}

func validateSortField(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "date", "amount":
		return true
	}
	return false
}
