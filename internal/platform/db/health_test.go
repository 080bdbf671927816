package db

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func runHealth(t *testing.T, checks ...Check) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	if err := HealthHandler(checks...)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func TestHealthHandler_Healthy(t *testing.T) {
	rec := runHealth(t,
		Check{Name: "backend", Ping: func(context.Context) error { return nil }},
		Check{Name: "database", Ping: func(context.Context) error { return nil }},
	)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"healthy"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	rec := runHealth(t,
		Check{Name: "backend", Ping: func(context.Context) error { return errors.New("connection refused") }},
		Check{Name: "database", Ping: func(context.Context) error { return nil }},
	)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "connection refused") || !strings.Contains(body, `"status":"unhealthy"`) {
		t.Errorf("unexpected body %s", body)
	}
}

func TestHealthHandler_SharesDeadline(t *testing.T) {
	runHealth(t, Check{Name: "backend", Ping: func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected a deadline on the check context")
		}
		return nil
	}})
}
