package records

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/web"
)

type mockLocator string

func (m mockLocator) PatientID(context.Context) (string, error) { return string(m), nil }

func render(t *testing.T, target string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	r, err := web.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	e := echo.New()
	e.Renderer = r
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	return rec, NewHandler(NewService(SampleRepo{}), mockLocator("")).Show(c)
}

func TestHandler_Show_Tabs(t *testing.T) {
	tests := []struct {
		target string
		wants  []string
	}{
		{"/health-records", []string{"Latest BP", "120/80 mmHg", "2 Results", "2 Managed", "Severe allergies"}},
		{"/health-records?tab=vitals", []string{"Heart Rate", "72 BPM", "Last updated: 2025-01-25"}},
		{"/health-records?tab=labs", []string{"Lipid Panel", "Improved", "HDL: 60 mg/dL"}},
		{"/health-records?tab=conditions", []string{"Type 2 Diabetes Mellitus", "Metformin 500mg twice daily", "Moderate"}},
		{"/health-records?tab=allergies", []string{"Penicillin", "Severe allergy alert", "Dr. Ravi Gunawardena"}},
	}
	for _, tt := range tests {
		rec, err := render(t, tt.target)
		if err != nil {
			t.Fatalf("%s: %v", tt.target, err)
		}
		for _, want := range tt.wants {
			if !strings.Contains(rec.Body.String(), want) {
				t.Errorf("%s: expected %q", tt.target, want)
			}
		}
	}
}

func TestHandler_Show_OnlySevereAlerted(t *testing.T) {
	rec, err := render(t, "/health-records?tab=allergies")
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(rec.Body.String(), "Severe allergy alert"); n != 1 {
		t.Errorf("expected one alert, got %d", n)
	}
}

func TestHandler_Show_UnknownTab(t *testing.T) {
	_, err := render(t, "/health-records?tab=imaging")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
