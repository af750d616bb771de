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

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	ledgerService services.LedgerServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(ledgerService services.LedgerServiceInterface) *UserHandler {
	return &UserHandler{ledgerService: ledgerService}
}

// CreateUser registers a user. Email is optional but unique.
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User details"
// @Success 201 {object} models.User "User created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 409 {object} errors.ErrorResponse "USER_002 - Email already exists"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_002 - Storage unavailable"
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return sendValidationError(c, err)
	}

	user, err := h.ledgerService.CreateUser(req.Name, req.Email)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// GetUser retrieves a user by id
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid user ID"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	user, err := h.ledgerService.GetUser(id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// ListUsers lists users in id order
// @Summary List users
// @Tags Users
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.UserListResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	offset, limit, err := parsePagination(c)
	if err != nil {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
	}

	users, total, err := h.ledgerService.ListUsers(offset, limit)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.UserListResponse{
		Users:  users,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// DeleteUser removes a user that no transaction references
// @Summary Delete user
// @Tags Users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Failure 409 {object} errors.ErrorResponse "USER_003 - User still referenced"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.ledgerService.DeleteUser(id); err != nil {
		if stderrors.Is(err, repositories.ErrRecordInUse) {
			return SendError(c, errors.UserInUse)
		}
		return sendServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
