package dashboard

import (
	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/web"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/", h.Show)
}

func (h *Handler) Show(c echo.Context) error {
	o := h.svc.Overview(c.Request().Context())
	return web.OK(c, "dashboard", web.NewPage(c, "Dashboard", "dashboard", o))
}
