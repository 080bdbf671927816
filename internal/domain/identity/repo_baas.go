package identity

import (
	"context"
	"fmt"

	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/fhir"
)

const (
	patientsTable      = "patients"
	practitionersTable = "practitioners"
)

type patientRepo struct {
	h baas.Handle
}

// NewPatientRepo stores patients through h, scoped to the request's user
// when one is signed in.
func NewPatientRepo(h baas.Handle) PatientRepository {
	return &patientRepo{h: h}
}

func (r *patientRepo) conn(ctx context.Context) baas.Handle {
	return baas.ForRequest(ctx, r.h)
}

func (r *patientRepo) Create(ctx context.Context, p *fhir.PatientRecord) error {
	if err := r.conn(ctx).Insert(ctx, patientsTable, p, p); err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, id string) (*fhir.PatientRecord, error) {
	var p fhir.PatientRecord
	if err := r.conn(ctx).SelectOne(ctx, patientsTable, baas.Query{}.Eq("id", id), &p); err != nil {
		return nil, fmt.Errorf("get patient %s: %w", id, err)
	}
	return &p, nil
}

func (r *patientRepo) FindByIdentifier(ctx context.Context, system, value string) (*fhir.PatientRecord, error) {
	needle, err := fhir.Encode([]fhir.Identifier{{System: system, Value: value}})
	if err != nil {
		return nil, err
	}
	var p fhir.PatientRecord
	q := baas.Query{}.Contains("identifier", string(needle))
	if err := r.conn(ctx).SelectOne(ctx, patientsTable, q, &p); err != nil {
		return nil, fmt.Errorf("find patient by identifier: %w", err)
	}
	return &p, nil
}

type practitionerRepo struct {
	h baas.Handle
}

func NewPractitionerRepo(h baas.Handle) PractitionerRepository {
	return &practitionerRepo{h: h}
}

func (r *practitionerRepo) conn(ctx context.Context) baas.Handle {
	return baas.ForRequest(ctx, r.h)
}

func (r *practitionerRepo) Create(ctx context.Context, p *fhir.PractitionerRecord) error {
	if err := r.conn(ctx).Insert(ctx, practitionersTable, p, p); err != nil {
		return fmt.Errorf("insert practitioner: %w", err)
	}
	return nil
}

func (r *practitionerRepo) GetByID(ctx context.Context, id string) (*fhir.PractitionerRecord, error) {
	var p fhir.PractitionerRecord
	if err := r.conn(ctx).SelectOne(ctx, practitionersTable, baas.Query{}.Eq("id", id), &p); err != nil {
		return nil, fmt.Errorf("get practitioner %s: %w", id, err)
	}
	return &p, nil
}

func (r *practitionerRepo) List(ctx context.Context, limit, offset int) ([]fhir.PractitionerRecord, error) {
	var out []fhir.PractitionerRecord
	q := baas.Query{}.Eq("active", true).Order("created_at", true).Limit(limit).Offset(offset)
	if err := r.conn(ctx).Select(ctx, practitionersTable, q, &out); err != nil {
		return nil, fmt.Errorf("list practitioners: %w", err)
	}
	return out, nil
}
