package prescriptions

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/platform/auth"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Lists splits the signed-in user's prescriptions into current and history.
func (s *Service) Lists(ctx context.Context) (current, history []Prescription, err error) {
	all, err := s.repo.List(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return nil, nil, err
	}
	for _, p := range all {
		if p.Current() {
			current = append(current, p)
		} else {
			history = append(history, p)
		}
	}
	return current, history, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Prescription, error) {
	return s.repo.Get(ctx, auth.UserIDFromContext(ctx), id)
}

// RequestRefill records a refill request for the prescriber.
func (s *Service) RequestRefill(ctx context.Context, id string) (*Prescription, error) {
	user := auth.UserIDFromContext(ctx)
	p, err := s.repo.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if err := p.checkRefill(); err != nil {
		return nil, err
	}
	at := s.now()
	if err := s.repo.MarkRefillRequested(ctx, user, id, at); err != nil {
		return nil, err
	}
	p.RequestedAt = &at
	s.logger.Info().
		Str("prescription_id", id).
		Str("medication", p.Medication).
		Int("refills_left", p.RefillsLeft).
		Msg("refill requested")
	return p, nil
}
