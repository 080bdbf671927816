package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// publicPaths are served without a session.
var publicPaths = map[string]bool{
	"/healthz":           true,
	"/favicon.ico":       true,
	"/static/tokens.css": true,
}

// IsPublicPath reports whether path bypasses session checks. Everything
// under /static/ is public.
func IsPublicPath(path string) bool {
	return publicPaths[path] || strings.HasPrefix(path, "/static/")
}

// Skipper is an echo skipper for IsPublicPath.
func Skipper(c echo.Context) bool {
	return IsPublicPath(c.Request().URL.Path)
}
