package messaging

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/web"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/messages", h.Inbox)
	g.POST("/messages/:id", h.Send)
}

// SendForm is the compose box.
type SendForm struct {
	Body string `form:"body" validate:"max=2000"`
}

// Item is a row in the conversation list.
type Item struct {
	Conversation
	Href     string
	Ago      string
	Preview  string
	Selected bool
}

// View is the messages page.
type View struct {
	Query  string
	Items  []Item
	Thread *Conversation
	Error  string
	Draft  string
}

func matches(c Conversation, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(c.Doctor), q) || strings.Contains(strings.ToLower(c.Specialty), q)
}

func notFound(err error) error {
	if errors.Is(err, ErrConversationNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return err
}

func (h *Handler) view(c echo.Context, selected string) (View, error) {
	ctx := c.Request().Context()
	convs, err := h.svc.Conversations(ctx)
	if err != nil {
		return View{}, err
	}
	if selected == "" && len(convs) > 0 {
		selected = convs[0].ID
	}
	v := View{Query: strings.TrimSpace(c.QueryParam("q"))}
	if selected != "" {
		if v.Thread, err = h.svc.Open(ctx, selected); err != nil {
			return View{}, notFound(err)
		}
	}
	now := h.svc.Now()
	for _, conv := range convs {
		if !matches(conv, v.Query) {
			continue
		}
		it := Item{
			Conversation: conv,
			Href:         web.Href("/messages", "c", conv.ID, "q", v.Query),
			Preview:      conv.Last().Body,
			Selected:     conv.ID == selected,
		}
		if last := conv.Last(); !last.SentAt.IsZero() {
			it.Ago = Ago(now, last.SentAt)
		}
		if it.Selected {
			it.Unread = 0
		}
		v.Items = append(v.Items, it)
	}
	return v, nil
}

// Inbox renders the conversation list with one thread open. The first
// conversation is opened when none is requested.
func (h *Handler) Inbox(c echo.Context) error {
	v, err := h.view(c, c.QueryParam("c"))
	if err != nil {
		return err
	}
	return web.OK(c, "messages", web.NewPage(c, "Messages", "messages", v))
}

func (h *Handler) Send(c echo.Context) error {
	id := c.Param("id")
	var form SendForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(form); err != nil {
		v, verr := h.view(c, id)
		if verr != nil {
			return verr
		}
		v.Error = web.ValidationMessage(err)
		v.Draft = form.Body
		return web.Render(c, http.StatusBadRequest, "messages", web.NewPage(c, "Messages", "messages", v))
	}
	if _, err := h.svc.Send(c.Request().Context(), id, form.Body); err != nil {
		return notFound(err)
	}
	return web.SeeOther(c, web.Href("/messages", "c", id))
}
