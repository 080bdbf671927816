package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/healthify/portal/internal/platform/fhir"
)

// Clinic is the zone appointment slots are offered in.
var Clinic = time.FixedZone("SLST", 5*60*60+30*60)

// SlotDuration is the length of every bookable slot.
const SlotDuration = 30 * time.Minute

const (
	dateLayout = "2006-01-02"
	slotLayout = "3:04 PM"

	VisitInPerson = "in-person"
	VisitVideo    = "video"
)

// Provider is a bookable practitioner in the portal catalog.
type Provider struct {
	ID            string
	Name          string
	Specialty     string
	SpecialtyCode string
	Experience    int
	Rating        float64
	Fee           string
	Location      string
	// leadDays is how far ahead the provider's diary is full.
	leadDays int
}

func (p Provider) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(strings.TrimPrefix(p.Name, "Dr. ")) {
		b.WriteString(part[:1])
	}
	return b.String()
}

func (p Provider) NextAvailable(now time.Time) string {
	return now.In(Clinic).AddDate(0, 0, p.leadDays).Format(dateLayout)
}

func (p Provider) Reference() fhir.Reference {
	return fhir.NewReference("Practitioner", p.ID, p.Name)
}

var providers = []Provider{
	{ID: "1", Name: "Dr. Nimal Silva", Specialty: "Cardiologist", SpecialtyCode: "394579002", Experience: 15, Rating: 4.9, Fee: "$75", Location: "Healthify Clinic, Colombo", leadDays: 3},
	{ID: "2", Name: "Dr. Priya Jayawardena", Specialty: "Endocrinologist", SpecialtyCode: "394583002", Experience: 12, Rating: 4.8, Fee: "$80", Location: "Healthify Clinic, Kandy", leadDays: 2},
	{ID: "3", Name: "Dr. Kamani Perera", Specialty: "General Practitioner", SpecialtyCode: "394814009", Experience: 8, Rating: 4.7, Fee: "$60", Location: "Healthify Clinic, Colombo", leadDays: 1},
}

// Providers returns the catalog in display order.
func Providers() []Provider {
	return append([]Provider(nil), providers...)
}

func FindProvider(id string) (Provider, bool) {
	for _, p := range providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}

var timeSlots = []string{
	"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM", "4:00 PM", "4:30 PM",
}

// TimeSlots lists the twelve daily slots.
func TimeSlots() []string {
	return append([]string(nil), timeSlots...)
}

func validSlot(s string) bool {
	for _, t := range timeSlots {
		if t == s {
			return true
		}
	}
	return false
}

// AvailableDates are the three bookable days after today.
func AvailableDates(now time.Time) []string {
	day := now.In(Clinic)
	out := make([]string, 3)
	for i := range out {
		out[i] = day.AddDate(0, 0, i+1).Format(dateLayout)
	}
	return out
}

// SlotStart is the instant a slot begins in the clinic zone.
func SlotStart(date, slot string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+" "+slotLayout, date+" "+slot, Clinic)
	if err != nil {
		return time.Time{}, fmt.Errorf("slot %s %s: %w", date, slot, err)
	}
	return t, nil
}

var ErrInvalidTransition = errors.New("invalid appointment status transition")

var transitions = map[fhir.AppointmentStatus][]fhir.AppointmentStatus{
	fhir.AppointmentProposed:  {fhir.AppointmentPending, fhir.AppointmentBooked, fhir.AppointmentCancelled, fhir.AppointmentWaitlist, fhir.AppointmentEnteredInError},
	fhir.AppointmentPending:   {fhir.AppointmentBooked, fhir.AppointmentCancelled, fhir.AppointmentWaitlist, fhir.AppointmentEnteredInError},
	fhir.AppointmentWaitlist:  {fhir.AppointmentPending, fhir.AppointmentBooked, fhir.AppointmentCancelled, fhir.AppointmentEnteredInError},
	fhir.AppointmentBooked:    {fhir.AppointmentArrived, fhir.AppointmentCheckedIn, fhir.AppointmentCancelled, fhir.AppointmentNoShow, fhir.AppointmentEnteredInError},
	fhir.AppointmentCheckedIn: {fhir.AppointmentArrived, fhir.AppointmentFulfilled, fhir.AppointmentNoShow, fhir.AppointmentEnteredInError},
	fhir.AppointmentArrived:   {fhir.AppointmentFulfilled, fhir.AppointmentEnteredInError},
}

func CanTransition(from, to fhir.AppointmentStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition checks a status change against the appointment lifecycle.
// Fulfilled, cancelled, noshow and entered-in-error are terminal.
func Transition(from, to fhir.AppointmentStatus) error {
	if !to.Valid() || !CanTransition(from, to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// activeStatuses hold a slot.
var activeStatuses = []string{
	string(fhir.AppointmentProposed), string(fhir.AppointmentPending), string(fhir.AppointmentBooked),
	string(fhir.AppointmentArrived), string(fhir.AppointmentCheckedIn), string(fhir.AppointmentWaitlist),
}

// BookingForm is posted by the last step of the booking wizard.
type BookingForm struct {
	Provider string `form:"provider" validate:"required"`
	Date     string `form:"date" validate:"required,fhirdate"`
	Time     string `form:"time" validate:"required"`
	Mode     string `form:"mode" validate:"omitempty,oneof=in-person video"`
	Reason   string `form:"reason" validate:"max=500"`
}

// Visit is an appointment as listed on the appointments page.
type Visit struct {
	ID        string
	Doctor    string
	Initials  string
	Specialty string
	Date      string
	Time      string
	Type      string
	Location  string
	Video     bool
	Status    fhir.AppointmentStatus
	Start     time.Time
	sample    bool
}

// Cancellable reports whether the patient may cancel the visit from the
// portal.
func (v Visit) Cancellable() bool {
	return !v.sample && CanTransition(v.Status, fhir.AppointmentCancelled)
}

// Joinable is true for confirmed video consultations.
func (v Visit) Joinable() bool {
	return v.Video && v.Status == fhir.AppointmentBooked
}

func visitType(video bool) string {
	if video {
		return "Video Consultation"
	}
	return "In-Person Visit"
}

// VisitFromRecord flattens a stored appointment for display.
func VisitFromRecord(rec fhir.AppointmentRecord) (Visit, error) {
	v := Visit{ID: rec.ID, Status: rec.Status}

	parts, err := rec.Participants()
	if err != nil {
		return Visit{}, fmt.Errorf("appointment %s participants: %w", rec.ID, err)
	}
	var practitionerID string
	for _, p := range parts {
		if p.Actor == nil {
			continue
		}
		if id, ok := strings.CutPrefix(p.Actor.Reference, "Practitioner/"); ok {
			practitionerID, v.Doctor = id, p.Actor.Display
		}
	}

	var specialties []fhir.CodeableConcept
	if len(rec.Specialty) > 0 {
		if err := json.Unmarshal(rec.Specialty, &specialties); err != nil {
			return Visit{}, fmt.Errorf("appointment %s specialty: %w", rec.ID, err)
		}
	}
	if len(specialties) > 0 {
		v.Specialty = specialties[0].Text
	}

	var services []fhir.CodeableConcept
	if len(rec.ServiceType) > 0 {
		if err := json.Unmarshal(rec.ServiceType, &services); err != nil {
			return Visit{}, fmt.Errorf("appointment %s service type: %w", rec.ID, err)
		}
	}
	v.Video = len(services) > 0 && services[0].Text == visitType(true)
	v.Type = visitType(v.Video)

	switch p, ok := FindProvider(practitionerID); {
	case v.Video:
		v.Location = "Online"
	case ok:
		v.Location = p.Location
		if v.Doctor == "" {
			v.Doctor = p.Name
		}
	default:
		v.Location = "Healthify Clinic"
	}
	v.Initials = Provider{Name: v.Doctor}.Initials()

	if start, ok := fhir.ParseDateTime(rec.Start); ok {
		v.Start = start.In(Clinic)
		v.Date = v.Start.Format(dateLayout)
		v.Time = v.Start.Format(slotLayout)
	}
	return v, nil
}

// sampleVisits are shown to accounts with no linked patient record.
func sampleVisits(now time.Time) []Visit {
	day := now.In(Clinic)
	at := func(days int, slot string) time.Time {
		d := day.AddDate(0, 0, days).Format(dateLayout)
		t, _ := SlotStart(d, slot)
		return t
	}
	visit := func(id string, p Provider, start time.Time, video bool, status fhir.AppointmentStatus) Visit {
		v := Visit{
			ID: id, Doctor: p.Name, Initials: p.Initials(), Specialty: p.Specialty,
			Date: start.Format(dateLayout), Time: start.Format(slotLayout),
			Type: visitType(video), Location: p.Location, Video: video, Status: status, Start: start, sample: true,
		}
		if video {
			v.Location = "Online"
		}
		return v
	}
	return []Visit{
		visit("sample-1", providers[0], at(1, "2:00 PM"), true, fhir.AppointmentBooked),
		visit("sample-2", providers[2], at(3, "10:30 AM"), false, fhir.AppointmentBooked),
		visit("sample-3", providers[1], at(-7, "11:00 AM"), false, fhir.AppointmentFulfilled),
	}
}

// splitVisits separates visits still to come from those that are over.
// Upcoming visits are sorted soonest first, past visits latest first.
func splitVisits(visits []Visit, now time.Time) (upcoming, past []Visit) {
	for _, v := range visits {
		if v.Start.After(now) && CanTransition(v.Status, fhir.AppointmentCancelled) {
			upcoming = append(upcoming, v)
		} else {
			past = append(past, v)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Start.Before(upcoming[j].Start) })
	sort.SliceStable(past, func(i, j int) bool { return past[i].Start.After(past[j].Start) })
	return upcoming, past
}
