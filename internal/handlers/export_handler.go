package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// ExportHandler streams the user's expense history as a spreadsheet.
type ExportHandler struct {
	expenseService services.ExpenseServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(expenseService services.ExpenseServicer) *ExportHandler {
	return &ExportHandler{expenseService: expenseService}
}

// ExportExpenses handles exporting all expenses as an .xlsx workbook.
// @Summary     Export expenses
// @Description Download the full expense history as an Excel workbook
// @Tags        expenses
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Success     200 {file} binary "Workbook"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses/export [get]
func (h *ExportHandler) ExportExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.GetAllUserExpenses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expenses"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Date", "Category", "Amount", "Note", "Created At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
			return
		}
	}

	for row, e := range expenses {
		amount, _ := e.Amount.Float64()
		values := []interface{}{
			e.Date.String(),
			string(e.Category),
			amount,
			e.Note,
			e.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
				return
			}
		}
	}

	filename := fmt.Sprintf("expenses-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		logWriteFailure(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// logWriteFailure covers the case where headers are already out and the
// stream breaks mid-body; nothing useful can be sent to the client anymore.
func logWriteFailure(c *gin.Context, err error) {
	_ = c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
}
