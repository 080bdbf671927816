package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/fhir"
)

const appointmentsTable = "appointments"

type appointmentRepo struct {
	h baas.Handle
	// service sees every patient's rows. It is only used to look for
	// clashing bookings.
	service baas.Handle
}

func NewRepo(h, service baas.Handle) Repository {
	return &appointmentRepo{h: h, service: service}
}

func (r *appointmentRepo) conn(ctx context.Context) baas.Handle {
	return baas.ForRequest(ctx, r.h)
}

// participantFilter matches appointments with the given actor.
func participantFilter(resourceType, id string) (string, error) {
	needle, err := fhir.Encode([]map[string]interface{}{
		{"actor": map[string]string{"reference": resourceType + "/" + id}},
	})
	if err != nil {
		return "", err
	}
	return string(needle), nil
}

func (r *appointmentRepo) Create(ctx context.Context, a *fhir.AppointmentRecord) error {
	if err := r.conn(ctx).Insert(ctx, appointmentsTable, a, a); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*fhir.AppointmentRecord, error) {
	var a fhir.AppointmentRecord
	if err := r.conn(ctx).SelectOne(ctx, appointmentsTable, baas.Query{}.Eq("id", id), &a); err != nil {
		return nil, fmt.Errorf("get appointment %s: %w", id, err)
	}
	return &a, nil
}

func (r *appointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]fhir.AppointmentRecord, error) {
	needle, err := participantFilter("Patient", patientID)
	if err != nil {
		return nil, err
	}
	var out []fhir.AppointmentRecord
	q := baas.Query{}.Contains("participant", needle).Order("start", false).Limit(100)
	if err := r.conn(ctx).Select(ctx, appointmentsTable, q, &out); err != nil {
		return nil, fmt.Errorf("list appointments for patient %s: %w", patientID, err)
	}
	return out, nil
}

func (r *appointmentRepo) ListByPractitioner(ctx context.Context, practitionerID string, from time.Time) ([]fhir.AppointmentRecord, error) {
	needle, err := participantFilter("Practitioner", practitionerID)
	if err != nil {
		return nil, err
	}
	var out []fhir.AppointmentRecord
	q := baas.Query{}.Contains("participant", needle).
		Gte("start", from.UTC().Format(time.RFC3339)).
		In("status", activeStatuses...).
		Order("start", true).
		Limit(100)
	if err := r.conn(ctx).Select(ctx, appointmentsTable, q, &out); err != nil {
		return nil, fmt.Errorf("list appointments for practitioner %s: %w", practitionerID, err)
	}
	return out, nil
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id string, from, to fhir.AppointmentStatus) (*fhir.AppointmentRecord, error) {
	var out []fhir.AppointmentRecord
	patch := map[string]interface{}{"status": to}
	q := baas.Query{}.Eq("id", id).Eq("status", string(from))
	if err := r.conn(ctx).Update(ctx, appointmentsTable, q, patch, &out); err != nil {
		return nil, fmt.Errorf("update appointment %s: %w", id, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: appointment %s is no longer %s", ErrInvalidTransition, id, from)
	}
	return &out[0], nil
}

func (r *appointmentRepo) ExistsAt(ctx context.Context, practitionerID, start string) (bool, error) {
	needle, err := participantFilter("Practitioner", practitionerID)
	if err != nil {
		return false, err
	}
	var rows []struct {
		ID string `json:"id"`
	}
	q := baas.Query{}.Columns("id").
		Contains("participant", needle).
		Eq("start", start).
		In("status", activeStatuses...).
		Limit(1)
	if err := r.service.Select(ctx, appointmentsTable, q, &rows); err != nil {
		return false, fmt.Errorf("check slot %s for practitioner %s: %w", start, practitionerID, err)
	}
	return len(rows) > 0, nil
}
