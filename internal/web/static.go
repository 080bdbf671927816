package web

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/ui/tokens"
)

//go:embed static
var staticFS embed.FS

// RegisterStatic serves the embedded scripts and the design-token
// stylesheet under /static.
func RegisterStatic(e *echo.Echo) {
	css := []byte(tokens.CSS())
	e.GET("/static/tokens.css", func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")
		return c.Blob(http.StatusOK, "text/css; charset=utf-8", css)
	})
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))
}
