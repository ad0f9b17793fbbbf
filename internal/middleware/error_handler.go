package middleware

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"transaksi-api/internal/database"
	"transaksi-api/internal/errors"
	"transaksi-api/internal/repositories"
	"transaksi-api/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API errors counter metric
	apiErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of API errors by code, endpoint, and status",
		},
		[]string{"code", "endpoint", "status"},
	)
)

// CustomHTTPErrorHandler is a custom error handler for Echo that formats errors
// as standardized error responses and logs them appropriately
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	errorResponse := buildErrorResponse(err, traceID)
	httpStatus := errorResponse.GetHTTPStatus()

	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) && echoErr.Code >= 400 {
		httpStatus = echoErr.Code
	}

	logLevel := slog.LevelWarn
	if errorResponse.IsServerError() {
		logLevel = slog.LevelError
	}

	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", errorResponse.Error.Code,
		"status", httpStatus,
		"message", errorResponse.Error.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	apiErrorsTotal.WithLabelValues(
		errorResponse.Error.Code,
		c.Path(),
		strconv.Itoa(httpStatus),
	).Inc()

	var sendErr error
	if c.Request().Method == http.MethodHead {
		sendErr = c.NoContent(httpStatus)
	} else {
		sendErr = c.JSON(httpStatus, errorResponse)
	}
	if sendErr != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", sendErr.Error(),
		)
	}
}

func buildErrorResponse(err error, traceID string) *errors.ErrorResponse {
	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) {
		errorCode := mapHTTPStatusToErrorCode(echoErr.Code)
		if errorCode == errors.SystemInternalError || errorCode == errors.SystemUnexpectedError {
			return errors.NewErrorResponse(errorCode, traceID)
		}
		if message, ok := echoErr.Message.(string); ok && message != "" {
			return errors.NewErrorResponse(errorCode, traceID, errors.WithMessage(message))
		}
		return errors.NewErrorResponse(errorCode, traceID)
	}

	if fieldErrors, ok := validation.FieldErrors(err); ok {
		return errors.NewValidationError(fieldErrors, traceID)
	}

	if stderrors.Is(err, database.ErrConnection) {
		return errors.NewErrorResponse(errors.SystemServiceUnavailable, traceID)
	}

	if stderrors.Is(err, repositories.ErrPersistence) {
		response, _ := errors.WrapDatabaseError(err, traceID)
		return response
	}

	response, _ := errors.WrapSystemError(err, traceID)
	return response
}

// mapHTTPStatusToErrorCode maps HTTP status codes to error codes
func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return errors.ValidationGeneral
	case http.StatusUnsupportedMediaType:
		return errors.ValidationInvalidFormat
	case http.StatusNotFound:
		return errors.RouteNotFound
	case http.StatusMethodNotAllowed:
		return errors.RouteMethodNotAllowed
	case http.StatusTooManyRequests:
		return errors.SystemRateLimitExceeded
	case http.StatusInternalServerError:
		return errors.SystemInternalError
	case http.StatusServiceUnavailable:
		return errors.SystemServiceUnavailable
	default:
		return errors.SystemUnexpectedError
	}
}
