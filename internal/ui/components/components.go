// Package components is the portal's server-rendered UI kit.
//
// Each component is a props struct whose Render method resolves its
// presentation classes through a variant.Definition and executes a shared
// html/template. Values outside a component's closed enums make Render
// return an error wrapping variant.ErrUnknownVariant; nothing is rendered
// with a silent default.
package components

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/healthify/portal/internal/ui/variant"
)

// Renderer is implemented by every component.
type Renderer interface {
	Render() (template.HTML, error)
}

// Size is shared by components; each one accepts only the subset declared in
// its own table.
type Size string

const (
	SizeDefault Size = "default"
	SizeXS      Size = "xs"
	SizeSM      Size = "sm"
	SizeMD      Size = "md"
	SizeLG      Size = "lg"
	SizeXL      Size = "xl"
	Size2XL     Size = "2xl"
	SizeIcon    Size = "icon"
	SizeTouch   Size = "touch"
	SizeWide    Size = "wide"
	SizeFull    Size = "full"
)

// Role selects the navigation colour scheme.
type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func render(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func unknown(component, what string, value interface{}) error {
	return fmt.Errorf("%s: %w %s %q", component, variant.ErrUnknownVariant, what, value)
}

// FuncMap exposes components to page templates. Helpers that take a string
// parse it against the component's closed enum and fail template execution on
// anything else.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"render": func(r Renderer) (template.HTML, error) {
			return r.Render()
		},
		"icon": func(name, class string) (template.HTML, error) {
			return Icon(name).Render(class)
		},
		"urgencyBadge": func(s string) (template.HTML, error) {
			u, err := ParseUrgency(s)
			if err != nil {
				return "", err
			}
			return UrgencyBadge{Urgency: u}.Render()
		},
		"statusBadge": func(s string) (template.HTML, error) {
			st, err := ParseStatus(s)
			if err != nil {
				return "", err
			}
			return StatusBadge{Status: st}.Render()
		},
		"subscriptionBadge": func(s string) (template.HTML, error) {
			t, err := ParseTier(s)
			if err != nil {
				return "", err
			}
			return SubscriptionBadge{Tier: t}.Render()
		},
		"appointmentStatusBadge": func(s string) (template.HTML, error) {
			return AppointmentStatusBadge{Status: appointmentStatus(s)}.Render()
		},
		"prescriptionStatusBadge": func(s string) (template.HTML, error) {
			p, err := ParsePrescriptionStatus(s)
			if err != nil {
				return "", err
			}
			return PrescriptionStatusBadge{Status: p}.Render()
		},
		"severityBadge": func(s string) (template.HTML, error) {
			sv, err := ParseSeverity(s)
			if err != nil {
				return "", err
			}
			return SeverityBadge{Severity: sv}.Render()
		},
		"cardClass": func(v string, size string, interactive bool) (string, error) {
			return CardClasses(CardVariant(v), Size(size), interactive, "")
		},
		"cardHeaderClass": func(v string) (string, error) {
			return CardHeaderClasses(CardVariant(v), "")
		},
		"cardTitleClass": func(level int) (string, error) {
			return CardTitleClasses(level, "")
		},
		"classes": variant.Join,
	}
}
