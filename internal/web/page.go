package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/healthify/portal/internal/platform/auth"
	"github.com/healthify/portal/internal/ui/components"
)

// Page is the data every page template receives. Data carries the
// page-specific view.
type Page struct {
	Title     string
	Active    string
	Session   *auth.Session
	Flash     string
	CSRF      string
	RequestID string
	Data      interface{}
}

// NewPage builds the shell for the current request and consumes any pending
// flash message.
func NewPage(c echo.Context, title, active string, data interface{}) Page {
	p := Page{
		Title:  title,
		Active: active,
		Flash:  popFlash(c),
		Data:   data,
	}
	p.RequestID, _ = c.Get("request_id").(string)
	if s, ok := auth.SessionFromContext(c.Request().Context()); ok {
		p.Session = s
	}
	p.CSRF = CSRFToken(c)
	return p
}

// CSRFToken is the token forms on this page must post back, or "" when CSRF
// protection is not installed.
func CSRFToken(c echo.Context) string {
	token, _ := c.Get(echomw.DefaultCSRFConfig.ContextKey).(string)
	return token
}

// Role is the navigation scheme for the signed-in user.
func (p Page) Role() components.Role {
	if p.Session == nil {
		return components.RolePatient
	}
	switch p.Session.Role {
	case auth.RolePractitioner:
		return components.RoleProvider
	case auth.RoleAdmin:
		return components.RoleAdmin
	}
	return components.RolePatient
}

func (p Page) navItems() []components.NavItem {
	if p.Role() == components.RoleProvider {
		return components.ProviderNavigation()
	}
	return components.PatientNavigation()
}

func (p Page) Navbar() components.Navbar {
	n := components.Navbar{Role: p.Role(), Items: p.navItems(), Active: p.Active}
	if p.Session != nil {
		n.UserName = p.Session.Email
	}
	return n
}

func (p Page) TabBar() components.TabBar {
	return components.TabBar{Role: p.Role(), Items: p.navItems(), Active: p.Active}
}

// Render writes a full page with the given status.
func Render(c echo.Context, status int, name string, p Page) error {
	return c.Render(status, name, p)
}

// OK renders a page with 200.
func OK(c echo.Context, name string, p Page) error {
	return Render(c, http.StatusOK, name, p)
}

// SeeOther completes a form post.
func SeeOther(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}
