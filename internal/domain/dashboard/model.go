package dashboard

import (
	"strings"
	"time"

	"github.com/healthify/portal/internal/domain/scheduling"
	"github.com/healthify/portal/internal/ui/components"
)

// Stat is one tile in the health overview.
type Stat struct {
	Title    string
	Value    string
	Subtitle string
	Icon     components.Icon
	Tone     string
	Href     string
}

// Action is a quick action tile.
type Action struct {
	Title       string
	Description string
	Icon        components.Icon
	Href        string
}

// Activity is one line in the recent activity feed.
type Activity struct {
	Title       string
	Description string
	When        string
}

var quickActions = []Action{
	{Title: "Book Appointment", Description: "Schedule with your healthcare provider", Icon: components.IconCalendar, Href: "/appointments?book=1"},
	{Title: "Chat with Doctor", Description: "Secure messaging with your care team", Icon: components.IconMessage, Href: "/messages"},
	{Title: "View Prescriptions", Description: "Access your medication history", Icon: components.IconPill, Href: "/prescriptions"},
	{Title: "Health Records", Description: "View your complete medical history", Icon: components.IconFileText, Href: "/health-records"},
}

// Greeting picks the salutation for the clinic's time of day.
func Greeting(now time.Time, firstName string) string {
	part := "evening"
	switch h := now.In(scheduling.Clinic).Hour(); {
	case h < 12:
		part = "morning"
	case h < 17:
		part = "afternoon"
	}
	if firstName == "" {
		firstName = "there"
	}
	return "Good " + part + ", " + firstName + "!"
}

// FirstName is the first word of a full name.
func FirstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return ""
}

// shortDoctor turns "Dr. Nimal Silva" into "Dr. Silva".
func shortDoctor(name string) string {
	f := strings.Fields(name)
	if len(f) < 2 {
		return name
	}
	if f[0] == "Dr." {
		return "Dr. " + f[len(f)-1]
	}
	return f[len(f)-1]
}

// relativeDay labels t as Today, Tomorrow or a short date.
func relativeDay(now, t time.Time) string {
	now, t = now.In(scheduling.Clinic), t.In(scheduling.Clinic)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, scheduling.Clinic)
	switch days := int(t.Sub(today).Hours() / 24); {
	case t.Before(today):
		return t.Format("Mon 2 Jan")
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	}
	return t.Format("Mon 2 Jan")
}
