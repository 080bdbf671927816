package messaging

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/web"
)

func newTestHandler(t *testing.T) (*Handler, *Service, *echo.Echo) {
	t.Helper()
	svc, _ := newTestService()
	r, err := web.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = web.NewValidator()
	return NewHandler(svc), svc, e
}

func request(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode())).WithContext(userCtx("u-1"))
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Inbox(t *testing.T) {
	h, _, e := newTestHandler(t)
	c, rec := request(e, http.MethodGet, "/messages", nil)
	if err := h.Inbox(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Dr. Nimal Silva", "Cardiologist • Online", "2 hours ago", "1 day ago", "3 days ago",
		"cholesterol levels have improved", `action="/messages/1"`, "Type your message...",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in page", want)
		}
	}
}

func TestHandler_Inbox_SelectsConversation(t *testing.T) {
	h, _, e := newTestHandler(t)
	c, rec := request(e, http.MethodGet, "/messages?c=3", nil)
	if err := h.Inbox(c); err != nil {
		t.Fatal(err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "General Practitioner • Offline") || !strings.Contains(body, `action="/messages/3"`) {
		t.Error("expected Dr. Kamani Perera's thread open")
	}
}

func TestHandler_Inbox_Search(t *testing.T) {
	h, _, e := newTestHandler(t)
	c, rec := request(e, http.MethodGet, "/messages?q=endo", nil)
	if err := h.Inbox(c); err != nil {
		t.Fatal(err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Dr. Priya Jayawardena") {
		t.Error("expected the matching conversation")
	}
	if strings.Contains(body, "Dr. Kamani Perera") {
		t.Error("non-matching conversation should be filtered out")
	}
}

func TestHandler_Inbox_NotFound(t *testing.T) {
	h, _, e := newTestHandler(t)
	c, _ := request(e, http.MethodGet, "/messages?c=42", nil)
	err := h.Inbox(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Send(t *testing.T) {
	h, svc, e := newTestHandler(t)
	c, rec := request(e, http.MethodPost, "/messages/2", url.Values{"body": {"See you next week"}})
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.Send(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/messages?c=2" {
		t.Errorf("expected redirect to the thread, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	conv, _ := svc.Open(userCtx("u-1"), "2")
	if conv.Last().Body != "See you next week" {
		t.Errorf("message not appended: %q", conv.Last().Body)
	}
}

func TestHandler_Send_Blank(t *testing.T) {
	h, svc, e := newTestHandler(t)
	c, rec := request(e, http.MethodPost, "/messages/1", url.Values{"body": {"   "}})
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Send(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected redirect, got %d", rec.Code)
	}
	conv, _ := svc.Open(userCtx("u-1"), "1")
	if len(conv.Messages) != 5 {
		t.Errorf("blank message should be ignored, got %d messages", len(conv.Messages))
	}
}

func TestHandler_Send_TooLong(t *testing.T) {
	h, _, e := newTestHandler(t)
	c, rec := request(e, http.MethodPost, "/messages/1", url.Values{"body": {strings.Repeat("a", 2001)}})
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Send(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "must be at most 2000 characters") {
		t.Errorf("expected 400 with a length message, got %d", rec.Code)
	}
}

func TestHandler_Send_UnknownConversation(t *testing.T) {
	h, _, e := newTestHandler(t)
	c, _ := request(e, http.MethodPost, "/messages/9", url.Values{"body": {"hi"}})
	c.SetParamNames("id")
	c.SetParamValues("9")
	he, ok := h.Send(c).(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Error("expected 404")
	}
}
