package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/slotlock"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"http 4xx keeps message", echo.NewHTTPError(http.StatusBadRequest, "unknown tab"), 400, "unknown tab"},
		{"http 5xx hides message", echo.NewHTTPError(http.StatusInternalServerError, "db exploded"), 500, "Internal Server Error"},
		{"not found", fmt.Errorf("get: %w", baas.ErrNotFound), 404, "The record you asked for does not exist."},
		{"slot taken", slotlock.ErrSlotTaken, 409, "That time slot has just been booked. Please choose another."},
		{"backend forbidden", &baas.Error{Status: http.StatusForbidden}, 403, "You are not allowed to view this record."},
		{"backend down", &baas.Error{Status: http.StatusServiceUnavailable}, 502, "The health records service is unavailable. Please try again."},
		{"anything else", errors.New("boom"), 500, "Something went wrong on our side. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := StatusOf(tt.err)
			if status != tt.status || msg != tt.msg {
				t.Errorf("StatusOf = %d %q, want %d %q", status, msg, tt.status, tt.msg)
			}
		})
	}
}

func TestErrorHandler_HTML(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	e := echo.New()
	e.Renderer = r
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/appointments/x", nil), rec)

	ErrorHandler(zerolog.Nop())(baas.ErrNotFound, c)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "The record you asked for does not exist.") || !strings.Contains(body, "Back to dashboard") {
		t.Errorf("unexpected error page: %s", body)
	}
}

func TestErrorHandler_FHIR(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/fhir/Appointment/x", nil), rec)

	ErrorHandler(zerolog.Nop())(echo.NewHTTPError(http.StatusForbidden, "role not allowed"), c)
	if rec.Code != http.StatusForbidden || rec.Header().Get(echo.HeaderContentType) != FHIRContentType {
		t.Errorf("unexpected response %d %s", rec.Code, rec.Header().Get(echo.HeaderContentType))
	}
	if body := rec.Body.String(); !strings.Contains(body, `"code":"forbidden"`) || !strings.Contains(body, "role not allowed") {
		t.Errorf("unexpected outcome %s", body)
	}
}

func TestErrorHandler_Head(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)
	ErrorHandler(zerolog.Nop())(errors.New("boom"), c)
	if rec.Code != http.StatusInternalServerError || rec.Body.Len() != 0 {
		t.Errorf("expected bare 500, got %d with %d bytes", rec.Code, rec.Body.Len())
	}
}
