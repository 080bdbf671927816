package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DefaultFormLimit bounds form posts; the portal accepts no uploads.
const DefaultFormLimit int64 = 64 << 10

// BodyLimit rejects request bodies larger than limit bytes with 413.
func BodyLimit(limit int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody {
				return next(c)
			}
			if req.ContentLength > limit {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
			}
			req.Body = http.MaxBytesReader(c.Response(), req.Body, limit)
			return next(c)
		}
	}
}
