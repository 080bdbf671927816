package scheduling

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/platform/auth"
	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/web"
)

type mockLocator struct {
	patientID      string
	practitionerID string
}

func (m mockLocator) PatientID(context.Context) (string, error)      { return m.patientID, nil }
func (m mockLocator) PractitionerID(context.Context) (string, error) { return m.practitionerID, nil }

func newTestHandler(t *testing.T, loc mockLocator) (*Handler, *Service, *mockRepo, *echo.Echo) {
	t.Helper()
	svc, repo := newTestService()
	r, err := web.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = web.NewValidator()
	return NewHandler(svc, loc), svc, repo, e
}

func patientCtx() context.Context {
	return auth.WithSession(context.Background(), &auth.Session{UserID: "u-1", Role: auth.RolePatient, AccessToken: "token"})
}

func get(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(patientCtx())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func post(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode())).WithContext(patientCtx())
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in page", want)
		}
	}
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != code {
		t.Errorf("expected %d, got %v", code, err)
	}
}

func TestHandler_List_Sample(t *testing.T) {
	h, _, _, e := newTestHandler(t, mockLocator{})
	c, rec := get(e, "/appointments")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, rec.Body.String(), "Upcoming (2)", "Past (1)", "Dr. Nimal Silva", "Join Call", "Book New Appointment")
}

func TestHandler_List_PastTab(t *testing.T) {
	h, _, _, e := newTestHandler(t, mockLocator{})
	c, rec := get(e, "/appointments?tab=past")
	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	assertContains(t, rec.Body.String(), "Dr. Priya Jayawardena", "Completed")
}

func TestHandler_List_BadQuery(t *testing.T) {
	h, _, _, e := newTestHandler(t, mockLocator{})
	for _, target := range []string{
		"/appointments?tab=later",
		"/appointments?book=1&step=4",
		"/appointments?book=1&step=two",
		"/appointments?book=1&step=2&provider=42",
		"/appointments?book=1&step=2&provider=1&time=1:15+PM",
		"/appointments?book=1&step=2&provider=1&date=2025-03-01",
	} {
		c, _ := get(e, target)
		assertStatus(t, h.List(c), http.StatusBadRequest)
	}
}

func TestHandler_List_Wizard(t *testing.T) {
	h, _, _, e := newTestHandler(t, mockLocator{})

	c, rec := get(e, "/appointments?book=1")
	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	assertContains(t, rec.Body.String(), "Select Healthcare Provider", "Dr. Kamani Perera", "Next: 2025-01-28", "$80")

	c, rec = get(e, "/appointments?book=1&step=2&provider=1&date=2025-01-29")
	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	assertContains(t, rec.Body.String(), "Choose Date &amp; Time", "4:30 PM", "Tue 28 Jan")

	c, rec = get(e, "/appointments?book=1&step=3&provider=1&date=2025-01-29&time=2:30+PM")
	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	assertContains(t, rec.Body.String(), "Confirm Appointment", "January 29, 2025", `name="provider" value="1"`, "$75")
}

func TestHandler_List_WizardFallsBack(t *testing.T) {
	h, _, _, e := newTestHandler(t, mockLocator{})
	c, rec := get(e, "/appointments?book=1&step=3&provider=2")
	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	assertContains(t, rec.Body.String(), "Step 2 of 3")
}

func TestHandler_List_CancelPrompt(t *testing.T) {
	h, _, _, e := newTestHandler(t, mockLocator{})
	c, rec := get(e, "/appointments?cancel=abc")
	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	assertContains(t, rec.Body.String(), "Cancel appointment?", `action="/appointments/abc/cancel"`, "Keep appointment")
}

func bookingValues() url.Values {
	return url.Values{"provider": {"1"}, "date": {"2025-01-28"}, "time": {"10:00 AM"}, "mode": {"video"}}
}

func TestHandler_Book(t *testing.T) {
	h, _, repo, e := newTestHandler(t, mockLocator{patientID: "pat-1"})
	c, rec := post(e, "/appointments", bookingValues())
	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/appointments?tab=upcoming" {
		t.Errorf("expected redirect, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if len(repo.appts) != 1 {
		t.Fatalf("expected one appointment, got %d", len(repo.appts))
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "portal_flash=") {
		t.Error("expected a flash cookie")
	}
}

func TestHandler_Book_Invalid(t *testing.T) {
	h, _, repo, e := newTestHandler(t, mockLocator{patientID: "pat-1"})
	form := bookingValues()
	form.Set("mode", "phone")
	c, rec := post(e, "/appointments", form)
	if err := h.Book(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), `role="alert"`, "Confirm Appointment")
	if len(repo.appts) != 0 {
		t.Error("nothing should be stored")
	}
}

func TestHandler_Book_NoPatient(t *testing.T) {
	h, _, _, e := newTestHandler(t, mockLocator{})
	c, _ := post(e, "/appointments", bookingValues())
	assertStatus(t, h.Book(c), http.StatusForbidden)
}

func TestHandler_Book_Conflict(t *testing.T) {
	h, _, _, e := newTestHandler(t, mockLocator{patientID: "pat-1"})
	c, _ := post(e, "/appointments", bookingValues())
	if err := h.Book(c); err != nil {
		t.Fatal(err)
	}
	c, rec := post(e, "/appointments", bookingValues())
	if err := h.Book(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), "That time was just taken", "Choose Date &amp; Time")
}

func TestHandler_Cancel(t *testing.T) {
	h, svc, repo, e := newTestHandler(t, mockLocator{patientID: "pat-1"})
	appt, err := svc.Book(context.Background(), patientRef, validForm())
	if err != nil {
		t.Fatal(err)
	}

	c, rec := post(e, "/appointments/"+appt.ID+"/cancel", nil)
	c.SetParamNames("id")
	c.SetParamValues(appt.ID)
	if err := h.Cancel(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || repo.appts[appt.ID].Status != fhir.AppointmentCancelled {
		t.Errorf("expected cancelled and redirected, got %d %s", rec.Code, repo.appts[appt.ID].Status)
	}

	c, _ = post(e, "/appointments/"+appt.ID+"/cancel", nil)
	c.SetParamNames("id")
	c.SetParamValues(appt.ID)
	assertStatus(t, h.Cancel(c), http.StatusConflict)

	c, _ = post(e, "/appointments/missing/cancel", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	assertStatus(t, h.Cancel(c), http.StatusNotFound)
}

func TestHandler_GetAppointmentFHIR(t *testing.T) {
	h, svc, _, e := newTestHandler(t, mockLocator{patientID: "pat-1"})
	appt, err := svc.Book(context.Background(), patientRef, validForm())
	if err != nil {
		t.Fatal(err)
	}

	c, rec := get(e, "/fhir/Appointment/"+appt.ID)
	c.SetParamNames("id")
	c.SetParamValues(appt.ID)
	if err := h.GetAppointmentFHIR(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || rec.Header().Get(echo.HeaderContentType) != web.FHIRContentType {
		t.Errorf("unexpected response %d %s", rec.Code, rec.Header().Get(echo.HeaderContentType))
	}
	assertContains(t, rec.Body.String(), `"resourceType":"Appointment"`, `"minutesDuration":30`, `"participant":[`)

	c, rec = get(e, "/fhir/Appointment/nope")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := h.GetAppointmentFHIR(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), `"resourceType":"OperationOutcome"`, `"not-found"`)
}

func TestHandler_ProviderDashboard_Sample(t *testing.T) {
	h, _, _, e := newTestHandler(t, mockLocator{})
	c, rec := get(e, "/provider")
	if err := h.ProviderDashboard(c); err != nil {
		t.Fatal(err)
	}
	assertContains(t, rec.Body.String(), "Today&#39;s schedule", "Sunil Fernando", "Coming up", "Chaminda Wickramasinghe", "sample schedule")
}

func TestHandler_ProviderPatients(t *testing.T) {
	h, svc, _, e := newTestHandler(t, mockLocator{practitionerID: "1"})
	ctx := context.Background()
	for _, slot := range []string{"9:00 AM", "9:30 AM"} {
		form := validForm()
		form.Time = slot
		if _, err := svc.Book(ctx, fhir.NewReference("Patient", "pat-9", "Nadeesha Silva"), form); err != nil {
			t.Fatal(err)
		}
	}
	c, rec := get(e, "/provider/patients")
	if err := h.ProviderPatients(c); err != nil {
		t.Fatal(err)
	}
	body := rec.Body.String()
	if n := strings.Count(body, "Nadeesha Silva"); n != 1 {
		t.Errorf("expected the patient listed once, got %d", n)
	}
}
