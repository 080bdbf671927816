package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/platform/auth"
	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/web"
	"github.com/healthify/portal/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the FHIR read endpoints. Row-level policies decide
// which rows the signed-in user can see.
func (h *Handler) RegisterRoutes(fhirGroup *echo.Group) {
	read := fhirGroup.Group("", auth.RequireRole(auth.RolePatient, auth.RolePractitioner))
	read.GET("/Patient/:id", h.GetPatientFHIR)
	read.GET("/Practitioner", h.SearchPractitionersFHIR)
	read.GET("/Practitioner/:id", h.GetPractitionerFHIR)
}

func (h *Handler) GetPatientFHIR(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, baas.ErrNotFound) {
			return web.WriteFHIR(c, http.StatusNotFound, fhir.NotFoundOutcome("Patient", c.Param("id")))
		}
		return err
	}
	return web.WriteFHIR(c, http.StatusOK, p.ToFHIR())
}

func (h *Handler) GetPractitionerFHIR(c echo.Context) error {
	p, err := h.svc.GetPractitioner(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, baas.ErrNotFound) {
			return web.WriteFHIR(c, http.StatusNotFound, fhir.NotFoundOutcome("Practitioner", c.Param("id")))
		}
		return err
	}
	return web.WriteFHIR(c, http.StatusOK, p.ToFHIR())
}

// SearchPractitionersFHIR pages through active practitioners. The match
// count is only reported on the last page.
func (h *Handler) SearchPractitionersFHIR(c echo.Context) error {
	pg := pagination.FromContext(c)
	// One extra row tells whether a next page exists.
	rows, err := h.svc.ListPractitioners(c.Request().Context(), pg.Limit+1, pg.Offset)
	if err != nil {
		return err
	}
	seen := pg.Offset + len(rows)
	total := seen
	if len(rows) > pg.Limit {
		rows = rows[:pg.Limit]
		total = -1
	}

	entries := make([]fhir.BundleEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, fhir.BundleEntry{FullURL: "Practitioner/" + r.ID, Resource: r.ToFHIR()})
	}
	var links []fhir.BundleLink
	for _, l := range pg.Links("/fhir/Practitioner", seen) {
		links = append(links, fhir.BundleLink{Relation: l.Relation, URL: l.URL})
	}
	return web.WriteFHIR(c, http.StatusOK, fhir.NewSearchBundle(total, links, entries))
}
