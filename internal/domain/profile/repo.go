package profile

import (
	"context"
	"time"
)

type Repository interface {
	Get(ctx context.Context, id string) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, id string, patch Patch) (*Profile, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
