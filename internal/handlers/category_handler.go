package handlers

import (
	stderrors "errors"
	"net/http"

	"personal-ledger/internal/dto"
	"personal-ledger/internal/errors"
	"personal-ledger/internal/repositories"
	"personal-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	ledgerService services.LedgerServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(ledgerService services.LedgerServiceInterface) *CategoryHandler {
	return &CategoryHandler{ledgerService: ledgerService}
}

// CreateCategory adds a category. Duplicate names are allowed.
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} models.Category
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return sendValidationError(c, err)
	}

	category, err := h.ledgerService.CreateCategory(req.Name)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, category)
}

// ListCategories lists every category
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} dto.CategoryListResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.ledgerService.ListCategories()
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

// GetCategory retrieves a category by id
// @Summary Get category by ID
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	category, err := h.ledgerService.GetCategory(id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category that no transaction references
// @Summary Delete category
// @Tags Categories
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_002 - Category still referenced"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.ledgerService.DeleteCategory(id); err != nil {
		if stderrors.Is(err, repositories.ErrRecordInUse) {
			return SendError(c, errors.CategoryInUse)
		}
		return sendServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
