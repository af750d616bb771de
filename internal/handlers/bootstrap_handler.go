package handlers

import (
	"net/http"

	"personal-ledger/internal/dto"
	"personal-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// BootstrapHandler seeds an empty ledger with demo data
type BootstrapHandler struct {
	bootstrapService services.BootstrapServiceInterface
}

// NewBootstrapHandler creates a new bootstrap handler
func NewBootstrapHandler(bootstrapService services.BootstrapServiceInterface) *BootstrapHandler {
	return &BootstrapHandler{bootstrapService: bootstrapService}
}

// Bootstrap
// @Summary Seed demo data
// @Description Creates the demo user, five categories and five transactions. Refused when the ledger holds any record.
// @Tags Bootstrap
// @Produce json
// @Success 201 {object} dto.BootstrapResponse
// @Failure 409 {object} errors.ErrorResponse "LEDGER_001 - Ledger already contains data"
// @Router /bootstrap [post]
func (h *BootstrapHandler) Bootstrap(c echo.Context) error {
	result, err := h.bootstrapService.Bootstrap()
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBootstrapResponse(result))
}
