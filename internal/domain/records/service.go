package records

import "context"

// Repository loads a patient's chart.
type Repository interface {
	Chart(ctx context.Context, patientID string) (*Chart, error)
}

// SampleRepo serves the same sample chart to every patient.
type SampleRepo struct{}

func (SampleRepo) Chart(context.Context, string) (*Chart, error) {
	return sampleChart(), nil
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Chart(ctx context.Context, patientID string) (*Chart, error) {
	return s.repo.Chart(ctx, patientID)
}
