package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorResponse is the envelope every failed API call returns
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the code, its message, optional details and the trace id
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithDetails adds detail messages to the error response
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

// NewErrorResponse builds the envelope for code. A code missing from the
// registry is reported as SYSTEM_005 so clients only ever see known codes.
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	if !IsValidErrorCode(code) {
		code = SystemUnexpectedError
	}

	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			TraceID: traceID,
			Details: []string{},
		},
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationError reports field failures as "field: message" details,
// sorted by field name
func NewValidationError(fieldErrors map[string]string, traceID string) *ErrorResponse {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, fmt.Sprintf("%s: %s", field, fieldErrors[field]))
	}

	return NewErrorResponse(ValidationGeneral, traceID, WithDetails(details...))
}

// WrapInternalError hides err behind the generic message of a SYSTEM_ code and
// hands err back for server-side logging. Non-system codes fall back to
// SYSTEM_001.
func WrapInternalError(code ErrorCode, err error, traceID string) (*ErrorResponse, error) {
	if !strings.HasPrefix(string(code), "SYSTEM_") {
		code = SystemInternalError
	}
	return NewErrorResponse(code, traceID), err
}

var httpStatuses = map[ErrorCode]int{
	ValidationGeneral:       http.StatusBadRequest,
	ValidationRequiredField: http.StatusBadRequest,
	ValidationInvalidFormat: http.StatusBadRequest,
	ValidationOutOfRange:    http.StatusBadRequest,
	ValidationInvalidEmail:  http.StatusBadRequest,
	ValidationInvalidDate:   http.StatusBadRequest,

	UserNotFound:           http.StatusNotFound,
	UserEmailAlreadyExists: http.StatusConflict,
	UserInUse:              http.StatusConflict,

	CategoryNotFound: http.StatusNotFound,
	CategoryInUse:    http.StatusConflict,

	TransactionNotFound:          http.StatusNotFound,
	TransactionInvalidAmount:     http.StatusBadRequest,
	TransactionInvalidType:       http.StatusBadRequest,
	TransactionDanglingReference: http.StatusUnprocessableEntity,

	LedgerAlreadyBootstrapped: http.StatusConflict,
	LedgerNoExpenses:          http.StatusUnprocessableEntity,

	SystemDatabaseError:      http.StatusServiceUnavailable,
	SystemServiceUnavailable: http.StatusServiceUnavailable,
	SystemRateLimitExceeded:  http.StatusTooManyRequests,
	SystemRouteNotFound:      http.StatusNotFound,
}

// GetHTTPStatus returns the status for code, 500 for anything unmapped
func GetHTTPStatus(code ErrorCode) int {
	if status, ok := httpStatuses[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetHTTPStatus returns the HTTP status code for the error response
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}

// IsServerError reports whether the response maps to a 5xx status
func (er *ErrorResponse) IsServerError() bool {
	return er.GetHTTPStatus() >= http.StatusInternalServerError
}
