package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthify/portal/internal/platform/auth"
	"github.com/healthify/portal/internal/platform/baas"
)

// LoginInterval is how stale last_login may get before a request refreshes
// it. It matches the portal session timeout.
const LoginInterval = 15 * time.Minute

var errNoSession = echo.NewHTTPError(http.StatusUnauthorized, "sign in required")

// UpdateForm is the editable part of the profile tab.
type UpdateForm struct {
	FullName  string `form:"full_name" validate:"required,max=120"`
	AvatarURL string `form:"avatar_url" validate:"omitempty,url,max=2048"`
}

type Service struct {
	profiles Repository
	// provisioner creates profiles for users the backend has not seen yet.
	// It is backed by the service handle.
	provisioner Repository
	logger      zerolog.Logger
	now         func() time.Time
}

func NewService(profiles, provisioner Repository, logger zerolog.Logger) *Service {
	return &Service{profiles: profiles, provisioner: provisioner, logger: logger, now: time.Now}
}

// Current returns the signed-in user's profile, creating it on first sight.
// Development sessions without a backend token get the sample profile.
func (s *Service) Current(ctx context.Context) (*Profile, error) {
	sess, ok := auth.SessionFromContext(ctx)
	if !ok {
		return nil, errNoSession
	}
	if sess.AccessToken == "" {
		p := SampleProfile(sess.Email)
		return &p, nil
	}

	p, err := s.profiles.Get(ctx, sess.UserID)
	if errors.Is(err, baas.ErrNotFound) {
		return s.provision(ctx, sess)
	}
	if err != nil {
		return nil, err
	}
	s.touch(ctx, p)
	return p, nil
}

func (s *Service) provision(ctx context.Context, sess *auth.Session) (*Profile, error) {
	now := s.now()
	p := &Profile{
		ID:                 sess.UserID,
		Email:              sess.Email,
		Role:               Role(sess.Role),
		SubscriptionStatus: SubscriptionTrial,
		LastLogin:          &now,
	}
	if err := s.provisioner.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", p.ID).Str("role", string(p.Role)).Msg("profile provisioned")
	return p, nil
}

// touch refreshes last_login when it is older than LoginInterval. Failures
// are logged and do not fail the request.
func (s *Service) touch(ctx context.Context, p *Profile) {
	now := s.now()
	if p.LastLogin != nil && now.Sub(*p.LastLogin) < LoginInterval {
		return
	}
	if err := s.profiles.TouchLastLogin(ctx, p.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("user_id", p.ID).Msg("last login not recorded")
		return
	}
	p.LastLogin = &now
}

// PatientID is the signed-in user's Patient resource id, or "" when none is
// linked.
func (s *Service) PatientID(ctx context.Context) (string, error) {
	p, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	return p.PatientID(), nil
}

// PractitionerID is the signed-in user's Practitioner resource id, or "".
func (s *Service) PractitionerID(ctx context.Context) (string, error) {
	p, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	return p.PractitionerID(), nil
}

// Update saves the profile tab. Development sessions cannot be saved.
func (s *Service) Update(ctx context.Context, form UpdateForm) (*Profile, error) {
	sess, ok := auth.SessionFromContext(ctx)
	if !ok {
		return nil, errNoSession
	}
	if sess.AccessToken == "" {
		return nil, echo.NewHTTPError(http.StatusForbidden, "sign in to edit your profile")
	}
	name := strings.TrimSpace(form.FullName)
	avatar := strings.TrimSpace(form.AvatarURL)
	p, err := s.profiles.Update(ctx, sess.UserID, Patch{FullName: &name, AvatarURL: &avatar})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", sess.UserID).Msg("profile updated")
	return p, nil
}
