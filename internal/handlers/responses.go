package handlers

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"personal-ledger/internal/errors"
	"personal-ledger/internal/models"
	"personal-ledger/internal/repositories"
	"personal-ledger/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// Handlers use one of three helpers to answer with an error:
//
// 1. SendError - a known client error with a fixed code
//    SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//
// 2. sendServiceError - any error returned by a service; the ledger error
//    taxonomy is translated to API codes and anything unknown becomes a
//    system error
//
// 3. SendSystemError - internal errors whose details must not reach the client

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	if errorResponse.IsServerError() {
		slog.Error("server error response",
			"trace_id", traceID,
			"error_code", errorResponse.Error.Code,
			"path", c.Request().URL.Path,
		)
	}
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapInternalError(errors.SystemInternalError, err, traceID)
	slog.Error("internal error",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"error", internalErr,
	)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// sendServiceError answers with the API code matching a ledger error
func sendServiceError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, models.ErrInvalidTransactionType):
		return SendError(c, errors.TransactionInvalidType, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrInvalidEmail):
		return SendError(c, errors.ValidationInvalidEmail, errors.WithDetails(err.Error()))
	case stderrors.Is(err, models.ErrValidation):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	case stderrors.Is(err, repositories.ErrUserNotFound):
		return SendError(c, errors.UserNotFound)
	case stderrors.Is(err, repositories.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, repositories.ErrTransactionNotFound):
		return SendError(c, errors.TransactionNotFound)
	case stderrors.Is(err, repositories.ErrDanglingReference):
		return SendError(c, errors.TransactionDanglingReference, errors.WithDetails(err.Error()))
	case stderrors.Is(err, repositories.ErrEmailAlreadyExists):
		return SendError(c, errors.UserEmailAlreadyExists)
	case stderrors.Is(err, services.ErrAlreadyBootstrapped):
		return SendError(c, errors.LedgerAlreadyBootstrapped)
	case stderrors.Is(err, services.ErrNoExpenses):
		return SendError(c, errors.LedgerNoExpenses)
	case stderrors.Is(err, repositories.ErrStorageUnavailable):
		traceID := getTraceID(c)
		errorResponse, internalErr := errors.WrapInternalError(errors.SystemDatabaseError, err, traceID)
		slog.Error("storage unavailable",
			"trace_id", traceID,
			"path", c.Request().URL.Path,
			"error", internalErr,
		)
		return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
	default:
		return SendSystemError(c, err)
	}
}

// sendValidationError lists every failing field of a request body
func sendValidationError(c echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	details := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, fmt.Sprintf("%s: failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
	}
	return SendError(c, validationCode(validationErrs[0].Tag()), errors.WithDetails(details...))
}

// validationCode picks the API code for the first failing rule
func validationCode(tag string) errors.ErrorCode {
	switch tag {
	case "required":
		return errors.ValidationRequiredField
	case "email":
		return errors.ValidationInvalidEmail
	case "iso_date":
		return errors.ValidationInvalidDate
	case "ledger_amount":
		return errors.TransactionInvalidAmount
	case "transaction_type":
		return errors.TransactionInvalidType
	case "max":
		return errors.ValidationOutOfRange
	default:
		return errors.ValidationGeneral
	}
}
