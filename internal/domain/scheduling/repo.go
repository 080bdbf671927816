package scheduling

import (
	"context"
	"time"

	"github.com/healthify/portal/internal/platform/fhir"
)

type Repository interface {
	Create(ctx context.Context, a *fhir.AppointmentRecord) error
	GetByID(ctx context.Context, id string) (*fhir.AppointmentRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]fhir.AppointmentRecord, error)
	ListByPractitioner(ctx context.Context, practitionerID string, from time.Time) ([]fhir.AppointmentRecord, error)
	// UpdateStatus moves the appointment from one status to another. It fails
	// with ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to fhir.AppointmentStatus) (*fhir.AppointmentRecord, error)
	// ExistsAt reports whether the practitioner already holds an active
	// appointment starting at start, whoever the patient is.
	ExistsAt(ctx context.Context, practitionerID, start string) (bool, error)
}
