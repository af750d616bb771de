package handlers

import (
	"net/http"

	"personal-ledger/internal/dto"
	"personal-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// SummaryHandler exposes the aggregation engine
type SummaryHandler struct {
	summaryService services.SummaryServiceInterface
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService services.SummaryServiceInterface) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetSummary returns income, expense, balance and the category breakdown
// @Summary Ledger summary
// @Tags Summary
// @Produce json
// @Success 200 {object} models.LedgerSummary
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_002 - Storage unavailable"
// @Router /summary [get]
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	summary, err := h.summaryService.GetSummary()
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetTotalIncome returns the sum of every income transaction
// @Summary Total income
// @Tags Summary
// @Produce json
// @Success 200 {object} dto.AmountResponse
// @Router /summary/income [get]
func (h *SummaryHandler) GetTotalIncome(c echo.Context) error {
	total, err := h.summaryService.GetTotalIncome()
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AmountResponse{Amount: total})
}

// GetTotalExpense returns the sum of every expense transaction
// @Summary Total expense
// @Tags Summary
// @Produce json
// @Success 200 {object} dto.AmountResponse
// @Router /summary/expense [get]
func (h *SummaryHandler) GetTotalExpense(c echo.Context) error {
	total, err := h.summaryService.GetTotalExpense()
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AmountResponse{Amount: total})
}

// GetRemainingBalance returns total income minus total expense
// @Summary Remaining balance
// @Tags Summary
// @Produce json
// @Success 200 {object} dto.AmountResponse
// @Router /summary/balance [get]
func (h *SummaryHandler) GetRemainingBalance(c echo.Context) error {
	balance, err := h.summaryService.GetRemainingBalance()
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AmountResponse{Amount: balance})
}

// GetCategoryBreakdown returns expense totals per category, largest first
// @Summary Expense breakdown by category
// @Tags Summary
// @Produce json
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Router /summary/categories [get]
func (h *SummaryHandler) GetCategoryBreakdown(c echo.Context) error {
	breakdown, err := h.summaryService.GetCategoryBreakdown()
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.CategoryBreakdownResponse{Categories: breakdown})
}
