package handlers

import (
	"net/http"

	"personal-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// InsightsHandler serves spending analysis derived from the aggregates
type InsightsHandler struct {
	insightsService services.InsightsServiceInterface
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService services.InsightsServiceInterface) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// GetSpendingSummary
// @Summary Spending summary
// @Tags Insights
// @Produce json
// @Success 200 {object} models.SpendingSummary
// @Router /insights/spending [get]
func (h *InsightsHandler) GetSpendingSummary(c echo.Context) error {
	summary, err := h.insightsService.GetSpendingSummary()
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetAdvice
// @Summary Budget advice for the top expense category
// @Tags Insights
// @Produce json
// @Success 200 {object} models.Advice
// @Failure 422 {object} errors.ErrorResponse "LEDGER_002 - No expenses recorded"
// @Router /insights/advice [get]
func (h *InsightsHandler) GetAdvice(c echo.Context) error {
	advice, err := h.insightsService.GetAdvice()
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, advice)
}
