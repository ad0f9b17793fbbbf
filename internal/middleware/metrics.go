package middleware

import (
	stderrors "errors"
	"net/http"
	"time"

	"transaksi-api/internal/services"

	"github.com/labstack/echo/v4"
)

// Metrics records the method, matched route, status and latency of every request.
func Metrics(recorder services.MetricsRecorderInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var echoErr *echo.HTTPError
				if stderrors.As(err, &echoErr) {
					status = echoErr.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			recorder.ObserveHTTPRequest(c.Request().Method, path, status, time.Since(start))
			return err
		}
	}
}
