// Package web holds the HTTP surface shared by the page handlers: the
// template renderer, the page shell, flash messages, validation and error
// rendering.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/ui/components"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the page templates. It implements echo.Renderer.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{}
	funcs := components.FuncMap()
	for name, fn := range r.funcs() {
		funcs[name] = fn
	}
	t, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	r.templates = t
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Has reports whether a page template is defined.
func (r *Renderer) Has(name string) bool {
	return r.templates.Lookup(name) != nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		// partial renders a named template to HTML so the result can be
		// handed to a component as its body.
		"partial": func(name string, data interface{}) (template.HTML, error) {
			var buf bytes.Buffer
			if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
		"withBody":   withBody,
		"withFooter": withFooter,
		"href":       href,
		"button": func(label, href string) components.Button {
			return components.Button{Label: label, Href: href}
		},
		"outlineButton": func(label, href string) components.Button {
			return components.Button{Label: label, Href: href, Variant: components.ButtonOutline, Size: components.SizeSM}
		},
		"submitButton": func(label, loadingText string) components.Button {
			return components.Button{Label: label, Type: "submit", LoadingText: loadingText, Size: components.SizeTouch}
		},
		"card": func(title, description string) components.Card {
			return components.Card{Header: &components.CardHeader{Title: title, Description: description}}
		},
		"loading": func(text string) components.Loading {
			return components.Loading{Text: text, FullScreen: true, Variant: components.SpinnerPatient, Icon: components.LoadingHeart}
		},
	}
}

func withBody(c components.Renderer, body template.HTML) (components.Renderer, error) {
	switch v := c.(type) {
	case components.Modal:
		v.Body = body
		return v, nil
	case components.ConfirmationModal:
		v.Modal.Body = body
		return v, nil
	case components.Card:
		v.Body = body
		return v, nil
	case components.PatientCard:
		v.Body = body
		return v, nil
	}
	return nil, fmt.Errorf("withBody: %T has no body", c)
}

func withFooter(c components.Renderer, footer template.HTML) (components.Renderer, error) {
	switch v := c.(type) {
	case components.Modal:
		v.Footer = footer
		return v, nil
	case components.Card:
		v.Footer = footer
		return v, nil
	}
	return nil, fmt.Errorf("withFooter: %T has no footer", c)
}

// href builds path?k1=v1&k2=v2 from alternating key/value pairs, dropping
// empty values.
func href(path string, pairs ...string) (string, error) {
	if len(pairs)%2 != 0 {
		return "", fmt.Errorf("href: odd number of query arguments for %s", path)
	}
	q := url.Values{}
	for i := 0; i < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			q.Set(pairs[i], pairs[i+1])
		}
	}
	if len(q) == 0 {
		return path, nil
	}
	return path + "?" + q.Encode(), nil
}

// Href is href for handlers.
func Href(path string, pairs ...string) string {
	s, err := href(path, pairs...)
	if err != nil {
		panic(err)
	}
	return s
}
