package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"transaksi-api/internal/database"
	"transaksi-api/internal/errors"
	"transaksi-api/internal/repositories"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through the helpers below rather than echo.NewHTTPError
// or ad-hoc c.JSON calls:
//
//   - SendError for client errors (4xx) with a catalogued code
//   - SendRepositoryError for errors returned by the persistence layer
//   - SendSystemError for anything else; the internal error is logged, never returned

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok || traceID == "" {
		return "unknown"
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapSystemError(err, traceID)
	logInternalError(c, traceID, errorResponse, internalErr)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendRepositoryError maps persistence failures to 503 for connection problems
// and 500 for statement failures.
func SendRepositoryError(c echo.Context, err error) error {
	traceID := getTraceID(c)

	var errorResponse *errors.ErrorResponse
	switch {
	case stderrors.Is(err, database.ErrConnection):
		errorResponse = errors.NewErrorResponse(errors.SystemServiceUnavailable, traceID)
	case stderrors.Is(err, repositories.ErrPersistence):
		errorResponse, _ = errors.WrapDatabaseError(err, traceID)
	default:
		return SendSystemError(c, err)
	}

	logInternalError(c, traceID, errorResponse, err)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

func logInternalError(c echo.Context, traceID string, errorResponse *errors.ErrorResponse, err error) {
	slog.ErrorContext(c.Request().Context(), "Request failed",
		"trace_id", traceID,
		"error_code", errorResponse.Error.Code,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err,
	)
}
