package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/alert"
	"fintrack/internal/services"
)

// ReportHandler serves derived spending statistics and budget alerts.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary handles the dashboard summary request.
// @Summary     Spending summary
// @Description Week/month/year totals plus the all-time category breakdown
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} report.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.GetSummary(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetTrend handles the six-month trend request.
// @Summary     Monthly spending trend
// @Description Exactly six calendar months ending at the current month, oldest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Trend points"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/trend [get]
func (h *ReportHandler) GetTrend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trend, err := h.reportService.GetMonthlyTrend(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}

// GetBudgetComparison handles the budget-vs-actual request.
// @Summary     Budget vs actual
// @Description Current-month spending against each set limit
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Comparison rows"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/budgets [get]
func (h *ReportHandler) GetBudgetComparison(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.reportService.GetBudgetComparison(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": rows})
}

// GetAlerts handles the budget alert request.
// @Summary     Budget alerts
// @Description Categories at or past 90% of their monthly limit
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Alerts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/alerts [get]
func (h *ReportHandler) GetAlerts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alerts, err := h.reportService.GetAlerts(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	if alerts == nil {
		alerts = []alert.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
