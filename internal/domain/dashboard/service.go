package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/domain/messaging"
	"github.com/healthify/portal/internal/domain/records"
	"github.com/healthify/portal/internal/domain/scheduling"
	"github.com/healthify/portal/internal/ui/components"
)

// Sources are the reads the overview is assembled from. A nil source is
// treated as empty.
type Sources struct {
	FullName  func(ctx context.Context) (string, error)
	NextVisit func(ctx context.Context) (*scheduling.Visit, error)
	Inbox     func(ctx context.Context) ([]messaging.Conversation, error)
	Chart     func(ctx context.Context) (*records.Chart, error)
}

// Overview is the dashboard page.
type Overview struct {
	Greeting string
	Stats    []Stat
	Actions  []Action
	Activity []Activity
}

type Service struct {
	src    Sources
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(src Sources, logger zerolog.Logger) *Service {
	return &Service{src: src, logger: logger, now: time.Now}
}

// Overview gathers every source. A failing source is logged and its tile
// falls back to the empty state rather than failing the page.
func (s *Service) Overview(ctx context.Context) Overview {
	now := s.now()
	var (
		name  string
		visit *scheduling.Visit
		inbox []messaging.Conversation
		chart *records.Chart
	)
	if s.src.FullName != nil {
		if n, err := s.src.FullName(ctx); err != nil {
			s.warn(err, "profile")
		} else {
			name = n
		}
	}
	if s.src.NextVisit != nil {
		if v, err := s.src.NextVisit(ctx); err != nil {
			s.warn(err, "appointments")
		} else {
			visit = v
		}
	}
	if s.src.Inbox != nil {
		if convs, err := s.src.Inbox(ctx); err != nil {
			s.warn(err, "messages")
		} else {
			inbox = convs
		}
	}
	if s.src.Chart != nil {
		if c, err := s.src.Chart(ctx); err != nil {
			s.warn(err, "records")
		} else {
			chart = c
		}
	}
	if chart == nil {
		chart = &records.Chart{}
	}

	return Overview{
		Greeting: Greeting(now, FirstName(name)),
		Stats: []Stat{
			nextVisitStat(now, visit),
			heartRateStat(chart),
			messagesStat(inbox),
			recordsStat(chart),
		},
		Actions:  quickActions,
		Activity: activity(now, visit, inbox, chart),
	}
}

func (s *Service) warn(err error, source string) {
	s.logger.Warn().Err(err).Str("source", source).Msg("dashboard source failed")
}

func nextVisitStat(now time.Time, v *scheduling.Visit) Stat {
	st := Stat{Title: "Next Appointment", Icon: components.IconCalendar, Tone: "primary", Href: "/appointments"}
	if v == nil {
		st.Value, st.Subtitle, st.Href = "None booked", "Book an appointment", "/appointments?book=1"
		return st
	}
	st.Value = shortDoctor(v.Doctor)
	st.Subtitle = relativeDay(now, v.Start) + " " + v.Time
	return st
}

func heartRateStat(c *records.Chart) Stat {
	st := Stat{Title: "Heart Rate", Value: "No reading", Icon: components.IconHeart, Tone: "error", Href: "/health-records?tab=vitals"}
	for _, v := range c.Vitals {
		if v.Label != "Heart Rate" {
			continue
		}
		st.Value = v.Value
		st.Subtitle = "Normal range"
		if !v.Normal {
			st.Subtitle = "Outside normal range"
		}
	}
	return st
}

func messagesStat(inbox []messaging.Conversation) Stat {
	st := Stat{Title: "Messages", Icon: components.IconMessage, Tone: "success", Href: "/messages"}
	unread := 0
	for _, c := range inbox {
		if c.Unread > 0 && unread == 0 {
			st.Subtitle = "From " + shortDoctor(c.Doctor)
			st.Href = "/messages?c=" + c.ID
		}
		unread += c.Unread
	}
	st.Value = fmt.Sprintf("%d New", unread)
	if unread == 0 {
		st.Subtitle = "You're all caught up"
	}
	return st
}

func recordsStat(c *records.Chart) Stat {
	n := len(c.Vitals) + len(c.Labs) + len(c.Conditions) + len(c.Allergies)
	return Stat{
		Title:    "Health Records",
		Value:    fmt.Sprintf("%d Reports", n),
		Subtitle: "View all records",
		Icon:     components.IconFileText,
		Tone:     "accent",
		Href:     "/health-records",
	}
}

func activity(now time.Time, v *scheduling.Visit, inbox []messaging.Conversation, c *records.Chart) []Activity {
	var feed []Activity
	for _, conv := range inbox {
		if conv.Unread == 0 {
			continue
		}
		last := conv.Last()
		feed = append(feed, Activity{
			Title:       "New Message",
			Description: conv.Doctor + ": " + last.Body,
			When:        messaging.Ago(now, last.SentAt),
		})
	}
	if len(c.Labs) > 0 {
		lab := c.Labs[0]
		feed = append(feed, Activity{
			Title:       "Lab Results Available",
			Description: lab.Name + " results are ready",
			When:        lab.Date,
		})
	}
	if v != nil {
		feed = append(feed, Activity{
			Title:       "Appointment Confirmed",
			Description: "Visit with " + shortDoctor(v.Doctor) + " on " + v.Date + " at " + v.Time,
			When:        relativeDay(now, v.Start),
		})
	}
	return feed
}
