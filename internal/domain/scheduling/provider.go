package scheduling

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/ui/components"
	"github.com/healthify/portal/internal/web"
)

// PatientRow is one patient on a practitioner's schedule.
type PatientRow struct {
	Card   components.PatientCard
	Date   string
	Time   string
	Type   string
	Reason string
	Status fhir.AppointmentStatus
}

// ProviderView is the practitioner dashboard and its sub pages.
type ProviderView struct {
	Heading string
	Sidebar components.Sidebar
	Today   []PatientRow
	Later   []PatientRow
	Sample  bool
}

// urgencyFor maps FHIR priority, where 1 is the most urgent, to a triage
// level. Unset or 0 is routine.
func urgencyFor(priority *int) components.Urgency {
	if priority == nil || *priority <= 0 {
		return components.UrgencyLow
	}
	switch p := *priority; {
	case p == 1:
		return components.UrgencyCritical
	case p <= 3:
		return components.UrgencyHigh
	case p <= 6:
		return components.UrgencyMedium
	}
	return components.UrgencyLow
}

func queueStatus(s fhir.AppointmentStatus) components.PatientStatus {
	switch s {
	case fhir.AppointmentArrived, fhir.AppointmentCheckedIn:
		return components.PatientActive
	case fhir.AppointmentFulfilled:
		return components.PatientCompleted
	case fhir.AppointmentCancelled, fhir.AppointmentNoShow, fhir.AppointmentEnteredInError:
		return components.PatientCancelled
	}
	return components.PatientWaiting
}

func rowFromRecord(rec fhir.AppointmentRecord) (PatientRow, error) {
	v, err := VisitFromRecord(rec)
	if err != nil {
		return PatientRow{}, err
	}
	parts, err := rec.Participants()
	if err != nil {
		return PatientRow{}, err
	}
	row := PatientRow{Date: v.Date, Time: v.Time, Type: v.Type, Status: rec.Status}
	for _, p := range parts {
		if p.Actor == nil {
			continue
		}
		if id, ok := strings.CutPrefix(p.Actor.Reference, "Patient/"); ok {
			row.Card.PatientID = id
			row.Card.PatientName = p.Actor.Display
		}
	}
	if row.Card.PatientName == "" {
		row.Card.PatientName = "Patient " + row.Card.PatientID
	}
	row.Card.Urgency = urgencyFor(rec.Priority)
	row.Card.Status = queueStatus(rec.Status)
	row.Card.Interactive = true

	var reasons []fhir.CodeableConcept
	if len(rec.ReasonCode) > 0 {
		if err := json.Unmarshal(rec.ReasonCode, &reasons); err != nil {
			return PatientRow{}, err
		}
	}
	if len(reasons) > 0 {
		row.Reason = reasons[0].Text
	}
	return row, nil
}

// sampleSchedule is shown to practitioners with no linked record.
func sampleSchedule(now time.Time) []PatientRow {
	today := now.In(Clinic).Format(dateLayout)
	tomorrow := now.In(Clinic).AddDate(0, 0, 1).Format(dateLayout)
	row := func(name, id string, u components.Urgency, st fhir.AppointmentStatus, date, slot, reason string) PatientRow {
		return PatientRow{
			Card: components.PatientCard{
				PatientName: name, PatientID: id, Urgency: u, Status: queueStatus(st), Interactive: true,
			},
			Date: date, Time: slot, Type: visitType(false), Reason: reason, Status: st,
		}
	}
	return []PatientRow{
		row("Sunil Fernando", "P-1042", components.UrgencyHigh, fhir.AppointmentArrived, today, "9:30 AM", "Chest pain on exertion"),
		row("Ayesha Rahman", "P-1187", components.UrgencyMedium, fhir.AppointmentBooked, today, "11:00 AM", "Blood sugar review"),
		row("Chaminda Wickramasinghe", "P-0955", components.UrgencyLow, fhir.AppointmentBooked, tomorrow, "2:30 PM", "Annual check-up"),
	}
}

func (h *Handler) schedule(c echo.Context) ([]PatientRow, bool, error) {
	ctx := c.Request().Context()
	practitionerID, err := h.locator.PractitionerID(ctx)
	if err != nil {
		return nil, false, err
	}
	if practitionerID == "" {
		return sampleSchedule(h.svc.Now()), true, nil
	}
	recs, err := h.svc.Schedule(ctx, practitionerID)
	if err != nil {
		return nil, false, err
	}
	rows := make([]PatientRow, 0, len(recs))
	for _, r := range recs {
		row, err := rowFromRecord(r)
		if err != nil {
			return nil, false, err
		}
		rows = append(rows, row)
	}
	return rows, false, nil
}

func (h *Handler) providerPage(c echo.Context, active, title string, group func([]PatientRow, *ProviderView)) error {
	rows, sample, err := h.schedule(c)
	if err != nil {
		return err
	}
	v := ProviderView{
		Heading: title,
		Sidebar: components.Sidebar{Role: components.RoleProvider, Items: components.ProviderNavigation(), Active: active},
		Sample:  sample,
	}
	group(rows, &v)
	return web.OK(c, "provider", web.NewPage(c, title, active, v))
}

// ProviderDashboard shows today's queue and what follows.
func (h *Handler) ProviderDashboard(c echo.Context) error {
	today := h.svc.Now().In(Clinic).Format(dateLayout)
	return h.providerPage(c, "dashboard", "Today's schedule", func(rows []PatientRow, v *ProviderView) {
		for _, r := range rows {
			if r.Date == today {
				v.Today = append(v.Today, r)
			} else {
				v.Later = append(v.Later, r)
			}
		}
	})
}

func (h *Handler) ProviderAppointments(c echo.Context) error {
	return h.providerPage(c, "appointments", "Appointments", func(rows []PatientRow, v *ProviderView) {
		v.Later = rows
	})
}

// ProviderPatients lists each scheduled patient once, at their next visit.
func (h *Handler) ProviderPatients(c echo.Context) error {
	return h.providerPage(c, "patients", "Patients", func(rows []PatientRow, v *ProviderView) {
		seen := make(map[string]bool)
		for _, r := range rows {
			if seen[r.Card.PatientID] {
				continue
			}
			seen[r.Card.PatientID] = true
			v.Later = append(v.Later, r)
		}
	})
}
