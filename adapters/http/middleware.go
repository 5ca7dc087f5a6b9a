package http

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/satriahrh/gerch/utils/log"
	"github.com/satriahrh/gerch/utils/metrics"
)

// RequestID tags each request's context with an id, reusing the caller's
// X-Request-ID when present.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, id)

		req := c.Request()
		c.SetRequest(req.WithContext(log.WithRequestID(req.Context(), id)))
		return next(c)
	}
}

// Metrics records request count and latency per route template.
func Metrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		} else if err != nil && status < 400 {
			status = 500
		}

		endpoint := c.Path()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		method := c.Request().Method
		metrics.RequestCount.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
		return err
	}
}
