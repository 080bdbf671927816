package messaging

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
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

func (s *Service) Now() time.Time {
	return s.now()
}

// Conversations lists the signed-in user's inbox in catalog order.
func (s *Service) Conversations(ctx context.Context) ([]Conversation, error) {
	return s.repo.List(ctx, auth.UserIDFromContext(ctx))
}

// Open returns a thread and clears its unread count.
func (s *Service) Open(ctx context.Context, id string) (*Conversation, error) {
	user := auth.UserIDFromContext(ctx)
	c, err := s.repo.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if c.Unread > 0 {
		if err := s.repo.MarkRead(ctx, user, id); err != nil {
			return nil, err
		}
		c.Unread = 0
	}
	return c, nil
}

// Send appends a patient message to a thread. Whitespace-only input is
// ignored and reported as not sent.
func (s *Service) Send(ctx context.Context, id, body string) (bool, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return false, nil
	}
	user := auth.UserIDFromContext(ctx)
	m := Message{ID: uuid.NewString(), Sender: FromPatient, Body: body, SentAt: s.now()}
	if err := s.repo.Append(ctx, user, id, m); err != nil {
		return false, err
	}
	s.logger.Info().Str("conversation_id", id).Str("message_id", m.ID).Msg("message sent")
	return true, nil
}

// Unread totals unread messages across the inbox.
func (s *Service) Unread(ctx context.Context) (int, error) {
	convs, err := s.Conversations(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range convs {
		n += c.Unread
	}
	return n, nil
}
