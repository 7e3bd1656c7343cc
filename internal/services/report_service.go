package services

import (
	"time"

	"fintrack/internal/alert"
	"fintrack/internal/report"
)

// reportService derives statistics by loading the user's full expense
// snapshot and handing it to the pure aggregation functions. The O(n) rescan
// per request is deliberate: personal-finance histories are small and the
// pure pass keeps every figure consistent with the store.
type reportService struct {
	expenses ExpenseServicer
	budgets  BudgetServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(expenses ExpenseServicer, budgets BudgetServicer) ReportServicer {
	return &reportService{expenses: expenses, budgets: budgets}
}

// GetSummary returns week/month/year totals and the category breakdown.
func (s *reportService) GetSummary(userID string, now time.Time) (*report.Summary, error) {
	expenses, err := s.expenses.GetAllUserExpenses(userID)
	if err != nil {
		return nil, err
	}
	summary := report.Summarize(expenses, now)
	return &summary, nil
}

// GetMonthlyTrend returns the six-month spending trend, oldest first.
func (s *reportService) GetMonthlyTrend(userID string, now time.Time) ([]report.TrendPoint, error) {
	expenses, err := s.expenses.GetAllUserExpenses(userID)
	if err != nil {
		return nil, err
	}
	return report.MonthlyTrend(expenses, now), nil
}

// GetBudgetComparison returns limit-vs-actual rows for the current month.
func (s *reportService) GetBudgetComparison(userID string, now time.Time) ([]report.BudgetRow, error) {
	expenses, err := s.expenses.GetAllUserExpenses(userID)
	if err != nil {
		return nil, err
	}
	limits, err := s.budgets.GetUserLimits(userID)
	if err != nil {
		return nil, err
	}
	return report.BudgetComparison(expenses, limits, now), nil
}

// GetAlerts evaluates budget thresholds against current-month spending.
func (s *reportService) GetAlerts(userID string, now time.Time) ([]alert.Alert, error) {
	rows, err := s.GetBudgetComparison(userID, now)
	if err != nil {
		return nil, err
	}
	return alert.Evaluate(rows), nil
}
