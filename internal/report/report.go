// Package report derives spending statistics from an expense snapshot.
// Every function is pure: it takes the full snapshot plus an explicit "now"
// and recomputes from scratch, which keeps the results trivially consistent
// with the record store at personal-finance data volumes.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/category"
	"fintrack/internal/models"
)

// TrendMonths is the number of periods in the monthly trend.
const TrendMonths = 6

// weekWindow is the lookback for the "this week" total. An expense qualifies
// when its date's midnight UTC instant is not before now minus this window,
// i.e. an exact 168-hour moving cutoff rather than "the last 7 calendar
// days". An expense dated exactly 7 days ago therefore only counts while
// "now" is still at or before midnight of today.
const weekWindow = 7 * 24 * time.Hour

// Summary holds the time-windowed totals and the all-time category
// breakdown for a snapshot.
type Summary struct {
	WeekTotal      decimal.Decimal                       `json:"week_total"`
	MonthTotal     decimal.Decimal                       `json:"month_total"`
	YearTotal      decimal.Decimal                       `json:"year_total"`
	CategoryTotals map[category.Category]decimal.Decimal `json:"category_totals"`
	ExpenseCount   int                                   `json:"expense_count"`
}

// Summarize computes week/month/year totals and per-category all-time totals
// for the given snapshot.
func Summarize(expenses []models.Expense, now time.Time) Summary {
	s := Summary{
		WeekTotal:      decimal.Zero,
		MonthTotal:     decimal.Zero,
		YearTotal:      decimal.Zero,
		CategoryTotals: make(map[category.Category]decimal.Decimal),
		ExpenseCount:   len(expenses),
	}

	weekCutoff := now.Add(-weekWindow)
	nowUTC := now.UTC()

	for _, e := range expenses {
		if !e.Date.Before(weekCutoff) {
			s.WeekTotal = s.WeekTotal.Add(e.Amount)
		}
		if e.Date.Year() == nowUTC.Year() {
			s.YearTotal = s.YearTotal.Add(e.Amount)
			if e.Date.Month() == nowUTC.Month() {
				s.MonthTotal = s.MonthTotal.Add(e.Amount)
			}
		}
		s.CategoryTotals[e.Category] = s.CategoryTotals[e.Category].Add(e.Amount)
	}

	return s
}

// TrendPoint is one month of the spending trend.
type TrendPoint struct {
	Label string          `json:"label"`
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyTrend returns totals for the six calendar months ending at the
// current month, oldest first. It always yields exactly six points,
// zero-filled for months with no expenses.
func MonthlyTrend(expenses []models.Expense, now time.Time) []TrendPoint {
	nowUTC := now.UTC()
	points := make([]TrendPoint, 0, TrendMonths)

	for i := TrendMonths - 1; i >= 0; i-- {
		period := time.Date(nowUTC.Year(), nowUTC.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		points = append(points, TrendPoint{
			Label: period.Format("Jan"),
			Year:  period.Year(),
			Month: period.Month(),
			Total: decimal.Zero,
		})
	}

	for _, e := range expenses {
		for i := range points {
			if e.Date.Year() == points[i].Year && e.Date.Month() == points[i].Month {
				points[i].Total = points[i].Total.Add(e.Amount)
				break
			}
		}
	}

	return points
}

// BudgetRow pairs a category's monthly limit with its current
// calendar-month spending.
type BudgetRow struct {
	Category category.Category `json:"category"`
	Limit    decimal.Decimal   `json:"limit"`
	Actual   decimal.Decimal   `json:"actual"`
}

// BudgetComparison returns one row per category with a set limit, in
// category display order. Actual is the category's spending restricted to
// the current calendar month.
func BudgetComparison(expenses []models.Expense, limits map[category.Category]decimal.Decimal, now time.Time) []BudgetRow {
	nowUTC := now.UTC()

	monthByCategory := make(map[category.Category]decimal.Decimal)
	for _, e := range expenses {
		if e.Date.Year() == nowUTC.Year() && e.Date.Month() == nowUTC.Month() {
			monthByCategory[e.Category] = monthByCategory[e.Category].Add(e.Amount)
		}
	}

	rows := make([]BudgetRow, 0, len(limits))
	for _, cat := range category.All() {
		limit, ok := limits[cat]
		if !ok {
			continue
		}
		rows = append(rows, BudgetRow{
			Category: cat,
			Limit:    limit,
			Actual:   monthByCategory[cat],
		})
	}
	return rows
}
