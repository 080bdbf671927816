package messaging

import "context"

// Repository holds each user's conversations.
type Repository interface {
	List(ctx context.Context, userID string) ([]Conversation, error)
	Get(ctx context.Context, userID, id string) (*Conversation, error)
	MarkRead(ctx context.Context, userID, id string) error
	Append(ctx context.Context, userID, id string, m Message) error
}
