package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/platform/baas"
	"github.com/healthify/portal/internal/platform/fhir"
)

var ErrDuplicatePatient = errors.New("a patient with this NIC is already registered")

// Validator checks tagged input structs.
type Validator interface {
	Validate(i interface{}) error
}

type Service struct {
	patients      PatientRepository
	practitioners PractitionerRepository
	validate      Validator
	logger        zerolog.Logger
}

func NewService(patients PatientRepository, practitioners PractitionerRepository, v Validator, logger zerolog.Logger) *Service {
	return &Service{patients: patients, practitioners: practitioners, validate: v, logger: logger}
}

// -- Patient --

// RegisterPatient stores a new patient. A NIC already on file is rejected.
func (s *Service) RegisterPatient(ctx context.Context, in PatientInput) (*fhir.PatientRecord, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	rec, err := in.Record()
	if err != nil {
		return nil, err
	}
	if in.NIC != "" {
		_, err := s.patients.FindByIdentifier(ctx, fhir.SystemNIC, in.NIC)
		switch {
		case err == nil:
			return nil, ErrDuplicatePatient
		case !errors.Is(err, baas.ErrNotFound):
			return nil, err
		}
	}
	if err := s.patients.Create(ctx, &rec); err != nil {
		return nil, err
	}
	s.logger.Info().Str("patient_id", rec.ID).Msg("patient registered")
	return &rec, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*fhir.PatientRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("get patient: %w", baas.ErrNotFound)
	}
	return s.patients.GetByID(ctx, id)
}

// -- Practitioner --

func (s *Service) RegisterPractitioner(ctx context.Context, in PractitionerInput) (*fhir.PractitionerRecord, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	rec, err := in.Record()
	if err != nil {
		return nil, err
	}
	if err := s.practitioners.Create(ctx, &rec); err != nil {
		return nil, err
	}
	s.logger.Info().Str("practitioner_id", rec.ID).Msg("practitioner registered")
	return &rec, nil
}

func (s *Service) GetPractitioner(ctx context.Context, id string) (*fhir.PractitionerRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("get practitioner: %w", baas.ErrNotFound)
	}
	return s.practitioners.GetByID(ctx, id)
}

func (s *Service) ListPractitioners(ctx context.Context, limit, offset int) ([]fhir.PractitionerRecord, error) {
	return s.practitioners.List(ctx, limit, offset)
}
