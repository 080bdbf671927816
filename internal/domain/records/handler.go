package records

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/ui/components"
	"github.com/healthify/portal/internal/web"
)

var tabs = web.TabSet{
	Param:   "tab",
	Path:    "/health-records",
	Default: "overview",
	Items: []components.Tab{
		{Key: "overview", Label: "Overview"},
		{Key: "vitals", Label: "Vital Signs"},
		{Key: "labs", Label: "Lab Results"},
		{Key: "conditions", Label: "Medical Conditions"},
		{Key: "allergies", Label: "Allergies"},
	},
}

// PatientLocator resolves the signed-in user's patient id, "" when none is
// linked.
type PatientLocator interface {
	PatientID(ctx context.Context) (string, error)
}

type Handler struct {
	svc     *Service
	locator PatientLocator
}

func NewHandler(svc *Service, locator PatientLocator) *Handler {
	return &Handler{svc: svc, locator: locator}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/health-records", h.Show)
}

type View struct {
	Tab     string
	Tabs    components.Tabs
	Chart   *Chart
	Summary Summary
}

func (h *Handler) Show(c echo.Context) error {
	tab, err := tabs.Selected(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	patientID, err := h.locator.PatientID(ctx)
	if err != nil {
		return err
	}
	chart, err := h.svc.Chart(ctx, patientID)
	if err != nil {
		return err
	}
	v := View{Tab: tab, Tabs: tabs.Strip(tab), Chart: chart, Summary: chart.Summary()}
	return web.OK(c, "records", web.NewPage(c, "Health Records", "health-records", v))
}
