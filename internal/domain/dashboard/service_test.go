package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/domain/messaging"
	"github.com/healthify/portal/internal/domain/records"
	"github.com/healthify/portal/internal/domain/scheduling"
)

// 09:00 in the clinic.
var testNow = time.Date(2025, 1, 27, 9, 0, 0, 0, scheduling.Clinic)

func fullSources() Sources {
	return Sources{
		FullName: func(context.Context) (string, error) { return "John Perera", nil },
		NextVisit: func(context.Context) (*scheduling.Visit, error) {
			return &scheduling.Visit{
				Doctor: "Dr. Nimal Silva", Date: "2025-01-28", Time: "2:00 PM",
				Start: time.Date(2025, 1, 28, 14, 0, 0, 0, scheduling.Clinic),
			}, nil
		},
		Inbox: func(context.Context) ([]messaging.Conversation, error) {
			return []messaging.Conversation{
				{ID: "1", Doctor: "Dr. Nimal Silva", Unread: 1, Messages: []messaging.Message{
					{Body: "Your test results look good.", SentAt: testNow.Add(-2 * time.Hour)},
				}},
				{ID: "3", Doctor: "Dr. Kamani Perera", Unread: 2, Messages: []messaging.Message{
					{Body: "Please take the prescribed medication twice daily.", SentAt: testNow.Add(-24 * time.Hour)},
				}},
			}, nil
		},
		Chart: func(context.Context) (*records.Chart, error) {
			return &records.Chart{
				Vitals: []records.Vital{{Label: "Heart Rate", Value: "72 BPM", Normal: true}},
				Labs:   []records.LabResult{{Name: "Lipid Panel", Date: "2025-01-15"}},
			}, nil
		},
	}
}

func newTestService(src Sources) *Service {
	svc := NewService(src, zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestService_Overview(t *testing.T) {
	o := newTestService(fullSources()).Overview(context.Background())
	if o.Greeting != "Good morning, John!" {
		t.Errorf("Greeting = %q", o.Greeting)
	}
	want := []struct{ title, value, subtitle string }{
		{"Next Appointment", "Dr. Silva", "Tomorrow 2:00 PM"},
		{"Heart Rate", "72 BPM", "Normal range"},
		{"Messages", "3 New", "From Dr. Silva"},
		{"Health Records", "2 Reports", "View all records"},
	}
	if len(o.Stats) != len(want) {
		t.Fatalf("expected %d stats, got %d", len(want), len(o.Stats))
	}
	for i, w := range want {
		st := o.Stats[i]
		if st.Title != w.title || st.Value != w.value || st.Subtitle != w.subtitle {
			t.Errorf("stat %d = %+v, want %+v", i, st, w)
		}
	}
	if len(o.Actions) != 4 {
		t.Errorf("expected 4 quick actions, got %d", len(o.Actions))
	}
	if len(o.Activity) != 4 || o.Activity[0].When != "2 hours ago" || o.Activity[3].Title != "Appointment Confirmed" {
		t.Errorf("unexpected activity %+v", o.Activity)
	}
}

func TestService_Overview_EmptySources(t *testing.T) {
	o := newTestService(Sources{}).Overview(context.Background())
	if o.Greeting != "Good morning, there!" {
		t.Errorf("Greeting = %q", o.Greeting)
	}
	if o.Stats[0].Value != "None booked" || o.Stats[0].Href != "/appointments?book=1" {
		t.Errorf("unexpected empty next appointment %+v", o.Stats[0])
	}
	if o.Stats[2].Value != "0 New" || o.Stats[3].Value != "0 Reports" {
		t.Errorf("unexpected empty stats %+v", o.Stats)
	}
	if len(o.Activity) != 0 {
		t.Errorf("expected no activity, got %+v", o.Activity)
	}
}

func TestService_Overview_FailingSourceDegrades(t *testing.T) {
	src := fullSources()
	src.Chart = func(context.Context) (*records.Chart, error) { return nil, errors.New("boom") }
	o := newTestService(src).Overview(context.Background())
	if o.Stats[1].Value != "No reading" {
		t.Errorf("expected heart rate fallback, got %+v", o.Stats[1])
	}
	if o.Stats[0].Value != "Dr. Silva" {
		t.Error("other sources should still render")
	}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{6, "Good morning, Ann!"},
		{12, "Good afternoon, Ann!"},
		{16, "Good afternoon, Ann!"},
		{17, "Good evening, Ann!"},
		{23, "Good evening, Ann!"},
	}
	for _, tt := range tests {
		now := time.Date(2025, 1, 27, tt.hour, 0, 0, 0, scheduling.Clinic)
		if got := Greeting(now, "Ann"); got != tt.want {
			t.Errorf("hour %d: got %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestRelativeDay(t *testing.T) {
	at := func(day, hour int) time.Time { return time.Date(2025, 1, day, hour, 0, 0, 0, scheduling.Clinic) }
	tests := []struct {
		t    time.Time
		want string
	}{
		{at(27, 18), "Today"},
		{at(28, 0), "Tomorrow"},
		{at(28, 23), "Tomorrow"},
		{at(30, 10), "Thu 30 Jan"},
		{at(20, 10), "Mon 20 Jan"},
	}
	for _, tt := range tests {
		if got := relativeDay(testNow, tt.t); got != tt.want {
			t.Errorf("relativeDay(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestShortDoctor(t *testing.T) {
	for in, want := range map[string]string{
		"Dr. Nimal Silva":       "Dr. Silva",
		"Dr. Priya Jayawardena": "Dr. Jayawardena",
		"Nurse Kamala":          "Kamala",
		"Silva":                 "Silva",
	} {
		if got := shortDoctor(in); got != want {
			t.Errorf("shortDoctor(%q) = %q, want %q", in, got, want)
		}
	}
}
