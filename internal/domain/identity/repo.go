package identity

import (
	"context"

	"github.com/healthify/portal/internal/platform/fhir"
)

type PatientRepository interface {
	Create(ctx context.Context, p *fhir.PatientRecord) error
	GetByID(ctx context.Context, id string) (*fhir.PatientRecord, error)
	// FindByIdentifier returns baas.ErrNotFound when no patient carries the
	// identifier.
	FindByIdentifier(ctx context.Context, system, value string) (*fhir.PatientRecord, error)
}

type PractitionerRepository interface {
	Create(ctx context.Context, p *fhir.PractitionerRecord) error
	GetByID(ctx context.Context, id string) (*fhir.PractitionerRecord, error)
	List(ctx context.Context, limit, offset int) ([]fhir.PractitionerRecord, error)
}
