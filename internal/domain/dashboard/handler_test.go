package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/web"
)

func TestHandler_Show(t *testing.T) {
	r, err := web.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	e := echo.New()
	e.Renderer = r
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := NewHandler(newTestService(fullSources())).Show(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Good morning, John!", "Next Appointment", "Tomorrow 2:00 PM", "3 New",
		"Quick Actions", `href="/appointments?book=1"`, "Chat with Doctor", "Recent Activity", "Lab Results Available",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in page", want)
		}
	}
}
