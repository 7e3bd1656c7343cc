package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/category"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-limit requests. The mutation contract is
// keyed per category: a whole-mapping overwrite is never accepted.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// UpsertLimitRequest is the payload for setting one category's monthly cap.
type UpsertLimitRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// GetBudgets handles listing the user's budget-limit mapping.
// @Summary     Get budget limits
// @Description Mapping of category to monthly limit; absent keys have no limit set
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Budget mapping"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limits, err := h.budgetService.GetUserLimits(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": limits})
}

// UpsertBudget handles setting one category's monthly limit.
// @Summary     Set a budget limit
// @Description Keyed upsert of one category's monthly cap
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category path string             true "Category label"
// @Param       request  body UpsertLimitRequest true "Monthly limit"
// @Success     200 {object} models.BudgetLimit "Upserted limit"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets/{category} [put]
func (h *BudgetHandler) UpsertBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cat := category.Category(c.Param("category"))
	limit, err := h.budgetService.UpsertLimit(userID, cat, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_BUDGET_LIMIT", "budget_limit", limit.ID, c.ClientIP(),
		map[string]interface{}{"category": cat, "amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"budget": limit})
}

// DeleteBudget handles unsetting one category's monthly limit.
// @Summary     Remove a budget limit
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Category label"
// @Success     200 {object} MessageResponse "Limit removed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No limit set for category"
// @Router      /budgets/{category} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cat := category.Category(c.Param("category"))
	if err := h.budgetService.RemoveLimit(userID, cat); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REMOVE_BUDGET_LIMIT", "budget_limit", string(cat), c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget limit removed successfully"})
}
