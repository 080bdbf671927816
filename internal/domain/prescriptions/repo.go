package prescriptions

import (
	"context"
	"sync"
	"time"
)

// Repository holds each user's prescriptions.
type Repository interface {
	List(ctx context.Context, userID string) ([]Prescription, error)
	Get(ctx context.Context, userID, id string) (*Prescription, error)
	MarkRefillRequested(ctx context.Context, userID, id string, at time.Time) error
}

// MemoryRepo keeps prescriptions in process, seeding each user with the
// sample list on first use.
type MemoryRepo struct {
	mu    sync.Mutex
	lists map[string][]Prescription
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{lists: make(map[string][]Prescription)}
}

func (r *MemoryRepo) list(userID string) []Prescription {
	ps, ok := r.lists[userID]
	if !ok {
		ps = samplePrescriptions()
		r.lists[userID] = ps
	}
	return ps
}

func (r *MemoryRepo) index(userID, id string) (int, error) {
	for i, p := range r.list(userID) {
		if p.ID == id {
			return i, nil
		}
	}
	return -1, ErrNotFound
}

func (r *MemoryRepo) List(_ context.Context, userID string) ([]Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Prescription(nil), r.list(userID)...), nil
}

func (r *MemoryRepo) Get(_ context.Context, userID, id string) (*Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.index(userID, id)
	if err != nil {
		return nil, err
	}
	p := r.lists[userID][i]
	return &p, nil
}

func (r *MemoryRepo) MarkRefillRequested(_ context.Context, userID, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.index(userID, id)
	if err != nil {
		return err
	}
	r.lists[userID][i].RequestedAt = &at
	return nil
}
