package messaging

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthify/portal/internal/domain/scheduling"
)

// MaxThreadMessages is how many messages a conversation keeps. Older ones
// are dropped as new ones arrive.
const MaxThreadMessages = 200

// MemoryRepo keeps conversations in process until restart. A user's inbox is
// seeded from the catalog the first time it is read.
type MemoryRepo struct {
	mu    sync.Mutex
	inbox map[string][]*Conversation
	now   func() time.Time
	limit int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{inbox: make(map[string][]*Conversation), now: time.Now, limit: MaxThreadMessages}
}

func (r *MemoryRepo) threads(userID string) []*Conversation {
	if convs, ok := r.inbox[userID]; ok {
		return convs
	}
	convs := seed(r.now())
	r.inbox[userID] = convs
	return convs
}

func seed(now time.Time) []*Conversation {
	convs := make([]*Conversation, 0, len(catalog))
	for _, t := range catalog {
		p, ok := scheduling.FindProvider(t.provider)
		if !ok {
			continue
		}
		c := &Conversation{
			ID:        p.ID,
			Doctor:    p.Name,
			Specialty: p.Specialty,
			Initials:  p.Initials(),
			Online:    t.online,
			Unread:    t.unread,
		}
		for _, m := range t.messages {
			c.Messages = append(c.Messages, Message{
				ID:     uuid.NewString(),
				Sender: m.sender,
				Body:   m.body,
				SentAt: now.Add(-m.before),
			})
		}
		convs = append(convs, c)
	}
	return convs
}

func find(convs []*Conversation, id string) (*Conversation, error) {
	for _, c := range convs {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrConversationNotFound
}

func clone(c *Conversation) Conversation {
	cp := *c
	cp.Messages = append([]Message(nil), c.Messages...)
	return cp
}

func (r *MemoryRepo) List(_ context.Context, userID string) ([]Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	convs := r.threads(userID)
	out := make([]Conversation, len(convs))
	for i, c := range convs {
		out[i] = clone(c)
	}
	return out, nil
}

func (r *MemoryRepo) Get(_ context.Context, userID, id string) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := find(r.threads(userID), id)
	if err != nil {
		return nil, err
	}
	cp := clone(c)
	return &cp, nil
}

func (r *MemoryRepo) MarkRead(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := find(r.threads(userID), id)
	if err != nil {
		return err
	}
	c.Unread = 0
	return nil
}

func (r *MemoryRepo) Append(_ context.Context, userID, id string, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := find(r.threads(userID), id)
	if err != nil {
		return err
	}
	c.Messages = append(c.Messages, m)
	if over := len(c.Messages) - r.limit; r.limit > 0 && over > 0 {
		c.Messages = append([]Message(nil), c.Messages[over:]...)
	}
	return nil
}
