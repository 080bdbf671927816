package messaging

import (
	"errors"
	"fmt"
	"time"

	"github.com/healthify/portal/internal/domain/scheduling"
)

// ErrConversationNotFound is returned for an id outside the signed-in user's
// conversations.
var ErrConversationNotFound = errors.New("conversation not found")

// Sender is who wrote a message.
type Sender string

const (
	FromDoctor  Sender = "doctor"
	FromPatient Sender = "patient"
)

// Message is one entry in a thread.
type Message struct {
	ID     string
	Sender Sender
	Body   string
	SentAt time.Time
}

// Time is the clock label shown under a bubble.
func (m Message) Time() string {
	return m.SentAt.In(scheduling.Clinic).Format("3:04 PM")
}

func (m Message) FromPatient() bool { return m.Sender == FromPatient }

// Conversation is a thread between the patient and one doctor.
type Conversation struct {
	ID        string
	Doctor    string
	Specialty string
	Initials  string
	Online    bool
	Unread    int
	Messages  []Message
}

// Last is the newest message, or the zero Message for an empty thread.
func (c Conversation) Last() Message {
	if len(c.Messages) == 0 {
		return Message{}
	}
	return c.Messages[len(c.Messages)-1]
}

// Ago renders the age of t relative to now the way the inbox shows it.
func Ago(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	}
	return plural(int(d/(24*time.Hour)), "day")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

type seedMessage struct {
	sender Sender
	body   string
	before time.Duration
}

type seedThread struct {
	provider string
	online   bool
	unread   int
	messages []seedMessage
}

// catalog is the inbox every new user starts with. Offsets are measured back
// from the moment the inbox is first opened.
var catalog = []seedThread{
	{provider: "1", online: true, unread: 1, messages: []seedMessage{
		{FromDoctor, "Hello! I've reviewed your recent blood work results.", 2*time.Hour + 15*time.Minute},
		{FromPatient, "Thank you doctor. How do they look?", 2*time.Hour + 10*time.Minute},
		{FromDoctor, "Your cholesterol levels have improved significantly since our last check. This is great progress!", 2*time.Hour + 7*time.Minute},
		{FromPatient, "That's wonderful news! I've been following the diet plan you recommended.", 2*time.Hour + 5*time.Minute},
		{FromDoctor, "Your test results look good. Let's schedule a follow-up appointment.", 2 * time.Hour},
	}},
	{provider: "3", messages: []seedMessage{
		{FromDoctor, "Please take the prescribed medication twice daily.", 24 * time.Hour},
	}},
	{provider: "2", online: true, messages: []seedMessage{
		{FromDoctor, "How are you feeling after the treatment?", 72 * time.Hour},
	}},
}
