package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"personal-ledger/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery turns a panic in a handler into a SYSTEM_001 response. A
// panic after the response was committed is only logged.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				slog.Error("panic recovered",
					"trace_id", traceID,
					"panic", fmt.Sprintf("%v", r),
					"stack_trace", string(debug.Stack()),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)

				if c.Response().Committed {
					return
				}

				resp := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				if jsonErr := c.JSON(http.StatusInternalServerError, resp); jsonErr != nil {
					slog.Error("failed to send panic recovery response",
						"trace_id", traceID,
						"error", jsonErr.Error(),
					)
				}
				err = nil
			}()

			return next(c)
		}
	}
}
