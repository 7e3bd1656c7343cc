// Package alert derives budget-threshold notifications from budget-vs-actual
// comparison rows.
package alert

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/category"
	"fintrack/internal/report"
)

// Level classifies how far over budget a category is.
type Level string

const (
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Thresholds, as percentages of the monthly limit.
const (
	warningThreshold  = 90
	criticalThreshold = 100
)

// Alert reports a category approaching or exceeding its monthly limit.
type Alert struct {
	Category   category.Category `json:"category"`
	Spent      decimal.Decimal   `json:"spent"`
	Limit      decimal.Decimal   `json:"limit"`
	Percentage float64           `json:"percentage"`
	Level      Level             `json:"level"`
}

// Evaluate emits one alert per row whose spending has reached 90% of its
// limit; at or past 100% the level is critical. Rows with a non-positive
// limit produce no alert: limits are validated positive at write time, but a
// zero limit must never turn into a division by zero here.
func Evaluate(rows []report.BudgetRow) []Alert {
	var alerts []Alert
	for _, row := range rows {
		if !row.Limit.IsPositive() {
			continue
		}

		percentage, _ := row.Actual.Div(row.Limit).Mul(decimal.NewFromInt(100)).Float64()
		if percentage < warningThreshold {
			continue
		}

		level := LevelWarning
		if percentage >= criticalThreshold {
			level = LevelCritical
		}

		alerts = append(alerts, Alert{
			Category:   row.Category,
			Spent:      row.Actual,
			Limit:      row.Limit,
			Percentage: percentage,
			Level:      level,
		})
	}
	return alerts
}
