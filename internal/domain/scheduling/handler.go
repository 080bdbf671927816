package scheduling

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/platform/auth"
	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/platform/slotlock"
	"github.com/healthify/portal/internal/ui/components"
	"github.com/healthify/portal/internal/web"
)

// Locator finds the clinical record linked to the signed-in user.
type Locator interface {
	PatientID(ctx context.Context) (string, error)
	PractitionerID(ctx context.Context) (string, error)
}

var tabs = web.TabSet{
	Param:   "tab",
	Path:    "/appointments",
	Default: "upcoming",
	Items: []components.Tab{
		{Key: "upcoming", Label: "Upcoming"},
		{Key: "past", Label: "Past"},
	},
}

var stepTitles = map[int]string{
	1: "Select Healthcare Provider",
	2: "Choose Date & Time",
	3: "Confirm Appointment",
}

type Handler struct {
	svc     *Service
	locator Locator
}

func NewHandler(svc *Service, locator Locator) *Handler {
	return &Handler{svc: svc, locator: locator}
}

func (h *Handler) RegisterRoutes(g *echo.Group, fhirGroup *echo.Group) {
	g.GET("/appointments", h.List)
	g.POST("/appointments", h.Book)
	g.POST("/appointments/:id/cancel", h.Cancel)

	provider := g.Group("/provider", auth.RequireRole(auth.RolePractitioner))
	provider.GET("", h.ProviderDashboard)
	provider.GET("/appointments", h.ProviderAppointments)
	provider.GET("/patients", h.ProviderPatients)

	read := fhirGroup.Group("", auth.RequireRole(auth.RolePatient, auth.RolePractitioner))
	read.GET("/Appointment/:id", h.GetAppointmentFHIR)
}

// View is the appointments page.
type View struct {
	Tab      string
	Tabs     components.Tabs
	Visits   []Visit
	Next     string
	Month    int
	Doctors  int
	Booking  *Booking
	Cancel   *components.ConfirmationModal
	BookHref string
}

// Choice is one selectable date or time in the booking wizard.
type Choice struct {
	Value    string
	Label    string
	Href     string
	Selected bool
}

type ProviderChoice struct {
	Provider
	Next string
	Href string
}

// Booking is the state of the booking wizard, carried in the query string.
type Booking struct {
	Step         int
	Modal        components.Modal
	Providers    []ProviderChoice
	Provider     Provider
	Date         string
	DateLabel    string
	Time         string
	Dates        []Choice
	Slots        []Choice
	BackHref     string
	ContinueHref string
	Mode         string
	Reason       string
	Error        string
}

func wizardHref(step int, provider, date, slot string) string {
	return web.Href("/appointments", "book", "1", "step", strconv.Itoa(step), "provider", provider, "date", date, "time", slot)
}

func badRequest(format string, args ...interface{}) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// booking builds the wizard for a step. Steps that are missing an earlier
// choice fall back to the step that makes it.
func (h *Handler) booking(step int, providerID, date, slot string) (*Booking, error) {
	if step < 1 || step > 3 {
		return nil, badRequest("unknown booking step %d", step)
	}
	b := &Booking{Date: date, Time: slot}
	now := h.svc.Now()

	if providerID != "" {
		p, ok := FindProvider(providerID)
		if !ok {
			return nil, badRequest("unknown provider %q", providerID)
		}
		b.Provider = p
	} else if step > 1 {
		step = 1
	}

	dates := AvailableDates(now)
	if date != "" && !contains(dates, date) {
		return nil, badRequest("date %q is not available", date)
	}
	if slot != "" && !validSlot(slot) {
		return nil, badRequest("unknown time slot %q", slot)
	}
	if step == 3 && (date == "" || slot == "") {
		step = 2
	}
	b.Step = step

	switch step {
	case 1:
		for _, p := range providers {
			b.Providers = append(b.Providers, ProviderChoice{Provider: p, Next: p.NextAvailable(now), Href: wizardHref(2, p.ID, "", "")})
		}
	case 2:
		for _, d := range dates {
			t, _ := SlotStart(d, timeSlots[0])
			b.Dates = append(b.Dates, Choice{Value: d, Label: t.Format("Mon 2 Jan"), Href: wizardHref(2, providerID, d, slot), Selected: d == date})
		}
		for _, s := range timeSlots {
			b.Slots = append(b.Slots, Choice{Value: s, Label: s, Href: wizardHref(2, providerID, date, s), Selected: s == slot})
		}
		b.BackHref = wizardHref(1, "", "", "")
		if date != "" && slot != "" {
			b.ContinueHref = wizardHref(3, providerID, date, slot)
		}
	case 3:
		t, _ := SlotStart(date, slot)
		b.DateLabel = t.Format("January 2, 2006")
		b.BackHref = wizardHref(2, providerID, date, slot)
		b.Mode = VisitInPerson
	}

	b.Modal = components.Modal{
		ID:          "booking",
		Open:        true,
		Title:       stepTitles[step],
		Description: fmt.Sprintf("Step %d of 3", step),
		Size:        components.SizeXL,
		Variant:     components.ModalPatient,
		CloseHref:   "/appointments",
	}
	return b, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (h *Handler) view(c echo.Context, tab string) (View, error) {
	ctx := c.Request().Context()
	patientID, err := h.locator.PatientID(ctx)
	if err != nil {
		return View{}, err
	}
	upcoming, past, err := h.svc.Visits(ctx, patientID)
	if err != nil {
		return View{}, err
	}

	v := View{Tab: tab, Tabs: tabs.Strip(tab), Doctors: len(providers), BookHref: wizardHref(1, "", "", "")}
	v.Tabs.Items[0].Label = fmt.Sprintf("Upcoming (%d)", len(upcoming))
	v.Tabs.Items[1].Label = fmt.Sprintf("Past (%d)", len(past))
	v.Visits = upcoming
	if tab == "past" {
		v.Visits = past
	}

	v.Next = "None scheduled"
	if len(upcoming) > 0 {
		v.Next = upcoming[0].Date + " " + upcoming[0].Time
	}
	now := h.svc.Now().In(Clinic)
	for _, visit := range append(upcoming, past...) {
		if visit.Start.Year() == now.Year() && visit.Start.Month() == now.Month() {
			v.Month++
		}
	}
	return v, nil
}

func (h *Handler) List(c echo.Context) error {
	tab, err := tabs.Selected(c)
	if err != nil {
		return err
	}
	v, err := h.view(c, tab)
	if err != nil {
		return err
	}

	if c.QueryParam("book") != "" {
		step := 1
		if s := c.QueryParam("step"); s != "" {
			if step, err = strconv.Atoi(s); err != nil {
				return badRequest("unknown booking step %q", s)
			}
		}
		v.Booking, err = h.booking(step, c.QueryParam("provider"), c.QueryParam("date"), c.QueryParam("time"))
		if err != nil {
			return err
		}
	} else if id := c.QueryParam("cancel"); id != "" {
		v.Cancel = h.cancelModal(c, id)
	}
	return web.OK(c, "appointments", web.NewPage(c, "Appointments", "appointments", v))
}

func (h *Handler) cancelModal(c echo.Context, id string) *components.ConfirmationModal {
	return &components.ConfirmationModal{
		Modal: components.Modal{
			ID:          "cancel-appointment",
			Open:        true,
			Title:       "Cancel appointment?",
			Description: "Your provider will be notified and the time slot released.",
			Size:        components.SizeSM,
			Variant:     components.ModalConfirmation,
			CloseHref:   "/appointments",
		},
		Variant:       components.ConfirmDanger,
		ConfirmText:   "Cancel appointment",
		CancelText:    "Keep appointment",
		ConfirmAction: "/appointments/" + id + "/cancel",
		Fields:        map[string]string{"_csrf": web.CSRFToken(c)},
	}
}

// rebook re-renders the wizard with a message after a failed booking.
func (h *Handler) rebook(c echo.Context, status, step int, form BookingForm, msg string) error {
	v, err := h.view(c, "upcoming")
	if err != nil {
		return err
	}
	b, err := h.booking(step, form.Provider, form.Date, form.Time)
	if err != nil {
		b, err = h.booking(1, "", "", "")
		if err != nil {
			return err
		}
	}
	b.Error = msg
	if b.Step == 3 {
		b.Mode, b.Reason = form.Mode, form.Reason
	}
	v.Booking = b
	return web.Render(c, status, "appointments", web.NewPage(c, "Appointments", "appointments", v))
}

// Book handles the confirmation step of the wizard.
func (h *Handler) Book(c echo.Context) error {
	var form BookingForm
	if err := c.Bind(&form); err != nil {
		return badRequest("invalid form")
	}
	if err := c.Validate(form); err != nil {
		if web.FieldErrors(err) == nil {
			return err
		}
		return h.rebook(c, http.StatusBadRequest, 3, form, web.ValidationMessage(err))
	}

	ctx := c.Request().Context()
	patientID, err := h.locator.PatientID(ctx)
	if err != nil {
		return err
	}
	var patient fhir.Reference
	if patientID != "" {
		patient = fhir.NewReference("Patient", patientID, "")
	}

	_, err = h.svc.Book(ctx, patient, form)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoPatient):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrSlotBooked), errors.Is(err, slotlock.ErrSlotTaken):
		return h.rebook(c, http.StatusConflict, 2, form, "That time was just taken. Please choose another slot.")
	case errors.Is(err, ErrSlotInPast):
		return h.rebook(c, http.StatusBadRequest, 2, form, "That time has already passed. Please choose another slot.")
	case errors.Is(err, ErrUnknownProvider), errors.Is(err, ErrUnknownSlot):
		return h.rebook(c, http.StatusBadRequest, 1, form, "Please choose a provider and time again.")
	default:
		return err
	}

	web.SetFlash(c, "Appointment booked successfully!")
	return web.SeeOther(c, web.Href("/appointments", "tab", "upcoming"))
}

func (h *Handler) Cancel(c echo.Context) error {
	_, err := h.svc.Cancel(c.Request().Context(), c.Param("id"))
	switch {
	case err == nil:
	case errors.Is(err, baas.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, "this appointment can no longer be cancelled")
	default:
		return err
	}
	web.SetFlash(c, "Appointment cancelled.")
	return web.SeeOther(c, web.Href("/appointments", "tab", "upcoming"))
}

func (h *Handler) GetAppointmentFHIR(c echo.Context) error {
	a, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, baas.ErrNotFound) {
			return web.WriteFHIR(c, http.StatusNotFound, fhir.NotFoundOutcome("Appointment", c.Param("id")))
		}
		return err
	}
	return web.WriteFHIR(c, http.StatusOK, a.ToFHIR())
}
