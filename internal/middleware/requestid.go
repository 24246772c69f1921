package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID assigns every request a unique id, honoring one supplied by the
// client, and echoes it back in the response header so log lines and support
// reports can be correlated.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.New().String()
				c.Request().Header.Set("X-Request-ID", id)
			}
			c.Response().Header().Set("X-Request-ID", id)
			c.Set("request_id", id)
			return next(c)
		}
	}
}
