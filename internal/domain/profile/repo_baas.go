package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/healthify/portal/internal/platform/baas"
)

const profilesTable = "profiles"

type baasRepo struct {
	h       baas.Handle
	service bool
}

// NewRepo reads and writes profiles through h. Requests made on behalf of a
// signed-in user carry that user's token.
func NewRepo(h baas.Handle) Repository {
	return &baasRepo{h: h}
}

// NewServiceRepo writes through the service handle with its own key, never
// the user's token. Only it can create rows or set role and
// fhir_resource_id.
func NewServiceRepo(service baas.Handle) Repository {
	return &baasRepo{h: service, service: true}
}

func (r *baasRepo) conn(ctx context.Context) baas.Handle {
	if r.service {
		return r.h
	}
	return baas.ForRequest(ctx, r.h)
}

func (r *baasRepo) Get(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	if err := r.conn(ctx).SelectOne(ctx, profilesTable, baas.Query{}.Eq("id", id), &p); err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	return &p, nil
}

func (r *baasRepo) Create(ctx context.Context, p *Profile) error {
	if err := r.conn(ctx).Insert(ctx, profilesTable, p, p); err != nil {
		return fmt.Errorf("create profile %s: %w", p.ID, err)
	}
	return nil
}

func (r *baasRepo) Update(ctx context.Context, id string, patch Patch) (*Profile, error) {
	var p Profile
	if err := r.conn(ctx).Update(ctx, profilesTable, baas.Query{}.Eq("id", id), patch, &p); err != nil {
		return nil, fmt.Errorf("update profile %s: %w", id, err)
	}
	return &p, nil
}

func (r *baasRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	patch := map[string]time.Time{"last_login": at.UTC()}
	if err := r.conn(ctx).Update(ctx, profilesTable, baas.Query{}.Eq("id", id), patch, nil); err != nil {
		return fmt.Errorf("touch last login %s: %w", id, err)
	}
	return nil
}
