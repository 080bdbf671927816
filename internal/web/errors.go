package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/platform/slotlock"
)

// FHIRContentType is the media type of FHIR JSON responses.
const FHIRContentType = "application/fhir+json"

// ErrorView is the data of the error page.
type ErrorView struct {
	Status  int
	Heading string
	Message string
}

// StatusOf maps an error to the status and message shown to the user.
// Internal details of 5xx errors are never shown.
func StatusOf(err error) (int, string) {
	var he *echo.HTTPError
	var be *baas.Error
	switch {
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if he.Code < http.StatusInternalServerError {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, msg
	case errors.Is(err, baas.ErrNotFound):
		return http.StatusNotFound, "The record you asked for does not exist."
	case errors.Is(err, slotlock.ErrSlotTaken):
		return http.StatusConflict, "That time slot has just been booked. Please choose another."
	case FieldErrors(err) != nil:
		return http.StatusBadRequest, ValidationMessage(err)
	case errors.As(err, &be):
		if be.Status == http.StatusUnauthorized || be.Status == http.StatusForbidden {
			return be.Status, "You are not allowed to view this record."
		}
		return http.StatusBadGateway, "The health records service is unavailable. Please try again."
	}
	return http.StatusInternalServerError, "Something went wrong on our side. Please try again."
}

// ErrorHandler renders errors as the HTML error page, or as an
// OperationOutcome for FHIR clients.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, msg := StatusOf(err)
		if status >= http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(err).Str("request_id", rid).Str("path", c.Request().URL.Path).Msg("request failed")
		}

		var werr error
		switch {
		case c.Request().Method == http.MethodHead:
			werr = c.NoContent(status)
		case wantsFHIR(c):
			werr = WriteFHIR(c, status, outcomeFor(status, msg))
		default:
			werr = renderError(c, status, msg)
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}

func renderError(c echo.Context, status int, msg string) error {
	if r, ok := c.Echo().Renderer.(*Renderer); ok && r.Has("error") {
		p := NewPage(c, http.StatusText(status), "", ErrorView{
			Status:  status,
			Heading: http.StatusText(status),
			Message: msg,
		})
		if err := c.Render(status, "error", p); err == nil {
			return nil
		}
	}
	return c.String(status, msg)
}

func wantsFHIR(c echo.Context) bool {
	if strings.HasPrefix(c.Request().URL.Path, "/fhir/") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), FHIRContentType)
}

func outcomeFor(status int, msg string) *fhir.OperationOutcome {
	switch status {
	case http.StatusNotFound:
		return fhir.NewOperationOutcome("error", "not-found", msg)
	case http.StatusBadRequest:
		return fhir.InvalidOutcome(msg)
	case http.StatusConflict:
		return fhir.NewOperationOutcome("error", "conflict", msg)
	case http.StatusUnauthorized:
		return fhir.NewOperationOutcome("error", "login", msg)
	case http.StatusForbidden:
		return fhir.NewOperationOutcome("error", "forbidden", msg)
	case http.StatusTooManyRequests:
		return fhir.NewOperationOutcome("error", "throttled", msg)
	}
	return fhir.ErrorOutcome(msg)
}

// WriteFHIR writes v as FHIR JSON.
func WriteFHIR(c echo.Context, status int, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, FHIRContentType, b)
}
