package profile

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/ui/components"
	"github.com/healthify/portal/internal/ui/tokens"
	"github.com/healthify/portal/internal/web"
)

var tabs = web.TabSet{
	Param:   "tab",
	Path:    "/profile",
	Default: "profile",
	Items: []components.Tab{
		{Key: "profile", Label: "Profile"},
		{Key: "subscription", Label: "Subscription"},
		{Key: "security", Label: "Security"},
	},
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/profile", h.Show)
	g.POST("/profile", h.Update)
}

// View is the profile page.
type View struct {
	Profile        *Profile
	Tab            string
	Tabs           components.Tabs
	Subscription   Subscription
	Name           components.Input
	Avatar         components.Input
	SessionTimeout string
	LastLogin      string
}

func (h *Handler) view(p *Profile, tab string) View {
	v := View{
		Profile:        p,
		Tab:            tab,
		Tabs:           tabs.Strip(tab),
		Subscription:   p.Subscription(h.svc.now()),
		SessionTimeout: tokens.Healthcare.SessionTimeout,
		Name: components.Input{
			Name: "full_name", Label: "Full name", Value: p.FullName, Required: true,
			LeftIcon: components.IconUser, Size: components.SizeTouch,
		},
		Avatar: components.Input{
			Name: "avatar_url", Type: "url", Label: "Avatar URL", Value: p.AvatarURL,
			HelperText: "Link to a square image.", Size: components.SizeTouch,
		},
	}
	if p.LastLogin != nil {
		v.LastLogin = p.LastLogin.Format(time.RFC1123)
	}
	return v
}

func (h *Handler) Show(c echo.Context) error {
	tab, err := tabs.Selected(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Current(c.Request().Context())
	if err != nil {
		return err
	}
	return web.OK(c, "profile", web.NewPage(c, "Profile", "profile", h.view(p, tab)))
}

// Update saves the profile tab. Invalid input re-renders the form with the
// field messages.
func (h *Handler) Update(c echo.Context) error {
	var form UpdateForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(form); err != nil {
		fields := web.FieldErrors(err)
		if fields == nil {
			return err
		}
		p, cerr := h.svc.Current(c.Request().Context())
		if cerr != nil {
			return cerr
		}
		edited := *p
		edited.FullName, edited.AvatarURL = form.FullName, form.AvatarURL
		v := h.view(&edited, "profile")
		v.Name.ErrorMessage = fields["full_name"]
		v.Avatar.ErrorMessage = fields["avatar_url"]
		return web.Render(c, http.StatusBadRequest, "profile", web.NewPage(c, "Profile", "profile", v))
	}
	if _, err := h.svc.Update(c.Request().Context(), form); err != nil {
		return err
	}
	web.SetFlash(c, "Profile updated.")
	return web.SeeOther(c, "/profile")
}
