package prescriptions

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/platform/auth"
	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/ui/components"
	"github.com/healthify/portal/internal/web"
)

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

func (h *Handler) RegisterRoutes(g *echo.Group, fhirGroup *echo.Group) {
	g.GET("/prescriptions", h.List)
	g.POST("/prescriptions/:id/refill", h.RequestRefill)
	g.GET("/prescriptions/:id/download", h.Download)

	fhirGroup.GET("/MedicationRequest/:id", h.GetMedicationRequestFHIR, auth.RequireRole(auth.RolePatient))
}

type View struct {
	Tab     string
	Tabs    components.Tabs
	Stats   Stats
	Current []Prescription
	History []Prescription
}

func (h *Handler) List(c echo.Context) error {
	current, history, err := h.svc.Lists(c.Request().Context())
	if err != nil {
		return err
	}
	ts := web.TabSet{
		Param:   "tab",
		Path:    "/prescriptions",
		Default: "current",
		Items: []components.Tab{
			{Key: "current", Label: fmt.Sprintf("Current (%d)", len(current))},
			{Key: "history", Label: fmt.Sprintf("History (%d)", len(history))},
		},
	}
	tab, err := ts.Selected(c)
	if err != nil {
		return err
	}
	v := View{
		Tab:     tab,
		Tabs:    ts.Strip(tab),
		Stats:   statsFor(current),
		Current: current,
		History: history,
	}
	return web.OK(c, "prescriptions", web.NewPage(c, "Prescriptions", "prescriptions", v))
}

func (h *Handler) RequestRefill(c echo.Context) error {
	p, err := h.svc.RequestRefill(c.Request().Context(), c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotRefillable), errors.Is(err, ErrNoRefillsLeft), errors.Is(err, ErrRefillPending):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case err != nil:
		return err
	}
	web.SetFlash(c, "Refill requested for "+p.Medication+".")
	return web.SeeOther(c, web.Href("/prescriptions", "tab", "current"))
}

func (h *Handler) medicationRequest(c echo.Context) (map[string]interface{}, error) {
	ctx := c.Request().Context()
	p, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		return nil, err
	}
	patientID, err := h.locator.PatientID(ctx)
	if err != nil {
		return nil, err
	}
	subject := fhir.Reference{Display: "Current patient"}
	if patientID != "" {
		subject = fhir.NewReference("Patient", patientID, "")
	}
	return p.ToFHIR(subject), nil
}

func (h *Handler) GetMedicationRequestFHIR(c echo.Context) error {
	res, err := h.medicationRequest(c)
	if errors.Is(err, ErrNotFound) {
		return web.WriteFHIR(c, http.StatusNotFound, fhir.NotFoundOutcome("MedicationRequest", c.Param("id")))
	}
	if err != nil {
		return err
	}
	return web.WriteFHIR(c, http.StatusOK, res)
}

// Download serves the MedicationRequest as a file.
func (h *Handler) Download(c echo.Context) error {
	res, err := h.medicationRequest(c)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="prescription-%s.json"`, c.Param("id")))
	return web.WriteFHIR(c, http.StatusOK, res)
}
