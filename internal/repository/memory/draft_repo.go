package memory

import (
	"context"
	"sync"

	"talent-onboarding-backend/internal/domain"
)

// DraftRepository keeps drafts in process memory. It backs local development
// and tests; nothing survives a restart.
type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]domain.UserDraft
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{drafts: make(map[string]domain.UserDraft)}
}

func (r *DraftRepository) Load(ctx context.Context, key string) (*domain.UserDraft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drafts[key]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	out := d.Clone()
	return &out, nil
}

func (r *DraftRepository) Save(ctx context.Context, key string, draft domain.UserDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drafts[key] = draft.Clone()
	return nil
}
