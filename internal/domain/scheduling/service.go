package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/platform/fhir"
	"github.com/healthify/portal/internal/platform/slotlock"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrUnknownSlot     = errors.New("unknown time slot")
	ErrSlotInPast      = errors.New("time slot has already passed")
	ErrSlotBooked      = errors.New("time slot is already booked")
	ErrNoPatient       = errors.New("no patient record is linked to this account")
)

type Service struct {
	appointments Repository
	locker       slotlock.Locker
	logger       zerolog.Logger
	now          func() time.Time
}

func NewService(appointments Repository, locker slotlock.Locker, logger zerolog.Logger) *Service {
	return &Service{appointments: appointments, locker: locker, logger: logger, now: time.Now}
}

func (s *Service) Now() time.Time {
	return s.now()
}

// Visits lists a patient's appointments split into upcoming and past. With
// no linked patient the catalog sample is returned.
func (s *Service) Visits(ctx context.Context, patientID string) (upcoming, past []Visit, err error) {
	now := s.now()
	if patientID == "" {
		upcoming, past = splitVisits(sampleVisits(now), now)
		return upcoming, past, nil
	}
	rows, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	visits := make([]Visit, 0, len(rows))
	for _, r := range rows {
		v, err := VisitFromRecord(r)
		if err != nil {
			return nil, nil, err
		}
		visits = append(visits, v)
	}
	upcoming, past = splitVisits(visits, now)
	return upcoming, past, nil
}

// Book reserves a slot for the patient. Concurrent bookings of the same
// provider, date and time are serialised by the slot lock and the loser
// sees ErrSlotBooked or slotlock.ErrSlotTaken.
func (s *Service) Book(ctx context.Context, patient fhir.Reference, form BookingForm) (*fhir.AppointmentRecord, error) {
	if patient.Reference == "" {
		return nil, ErrNoPatient
	}
	provider, ok := FindProvider(form.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, form.Provider)
	}
	if !validSlot(form.Time) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, form.Time)
	}
	start, err := SlotStart(form.Date, form.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSlot, err)
	}
	now := s.now()
	if !start.After(now) {
		return nil, ErrSlotInPast
	}

	rec, err := newAppointment(patient, provider, form, start, now)
	if err != nil {
		return nil, err
	}

	err = s.locker.WithSlotLock(ctx, slotlock.Key(provider.ID, form.Date, form.Time), func(lockCtx context.Context) error {
		taken, err := s.appointments.ExistsAt(lockCtx, provider.ID, rec.Start)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotBooked
		}
		return s.appointments.Create(lockCtx, rec)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("appointment_id", rec.ID).
		Str("practitioner", provider.ID).
		Str("start", rec.Start).
		Msg("appointment booked")
	return rec, nil
}

const appointmentTypeSystem = "http://terminology.hl7.org/CodeSystem/v2-0276"

// column is a JSON column of a new appointment row and the value stored in it.
type column struct {
	dst *json.RawMessage
	v   interface{}
}

func newAppointment(patient fhir.Reference, provider Provider, form BookingForm, start, now time.Time) (*fhir.AppointmentRecord, error) {
	end := start.Add(SlotDuration)
	mode := visitType(form.Mode == VisitVideo)
	rec := &fhir.AppointmentRecord{
		Status:      fhir.AppointmentBooked,
		Start:       start.Format(time.RFC3339),
		End:         end.Format(time.RFC3339),
		Created:     now.UTC().Format(time.RFC3339),
		Description: mode + " with " + provider.Name,
	}
	if !fhir.ValidateDateTime(rec.Start) || !fhir.ValidateDateTime(rec.End) {
		return nil, fmt.Errorf("appointment period %s to %s is not a valid dateTime", rec.Start, rec.End)
	}
	minutes := int(SlotDuration / time.Minute)
	rec.MinutesDuration = &minutes

	participants := []fhir.AppointmentParticipant{
		fhir.NewAppointmentParticipant(patient, "", ""),
		fhir.NewAppointmentParticipant(provider.Reference(), "", ""),
	}
	cols := []column{
		{&rec.Participant, participants},
		{&rec.Specialty, []fhir.CodeableConcept{fhir.NewCodeableConcept(fhir.SystemSNOMED, provider.SpecialtyCode, provider.Specialty)}},
		{&rec.AppointmentType, fhir.NewCodeableConcept(appointmentTypeSystem, "ROUTINE", "Routine appointment")},
		{&rec.ServiceType, []fhir.CodeableConcept{{Text: mode}}},
	}
	if reason := strings.TrimSpace(form.Reason); reason != "" {
		cols = append(cols, column{&rec.ReasonCode, []fhir.CodeableConcept{{Text: reason}}})
	}
	for _, col := range cols {
		raw, err := fhir.Encode(col.v)
		if err != nil {
			return nil, fmt.Errorf("encode appointment: %w", err)
		}
		*col.dst = raw
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (*fhir.AppointmentRecord, error) {
	return s.appointments.GetByID(ctx, id)
}

// Cancel moves a booked appointment to cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*fhir.AppointmentRecord, error) {
	return s.transition(ctx, id, fhir.AppointmentCancelled)
}

func (s *Service) transition(ctx context.Context, id string, to fhir.AppointmentStatus) (*fhir.AppointmentRecord, error) {
	rec, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Transition(rec.Status, to); err != nil {
		return nil, err
	}
	updated, err := s.appointments.UpdateStatus(ctx, id, rec.Status, to)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("appointment_id", id).
		Str("from", string(rec.Status)).
		Str("to", string(to)).
		Msg("appointment status changed")
	return updated, nil
}

// Schedule lists a practitioner's active appointments from the start of
// today.
func (s *Service) Schedule(ctx context.Context, practitionerID string) ([]fhir.AppointmentRecord, error) {
	day := s.now().In(Clinic)
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, Clinic)
	return s.appointments.ListByPractitioner(ctx, practitionerID, from)
}
