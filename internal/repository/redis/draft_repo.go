package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"talent-onboarding-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DraftRepository stores each draft as a JSON value under its session key.
// A ttl of zero keeps records until overwritten.
type DraftRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewDraftRepository(client *goredis.Client, ttl time.Duration) *DraftRepository {
	return &DraftRepository{client: client, ttl: ttl}
}

func (r *DraftRepository) Load(ctx context.Context, key string) (*domain.UserDraft, error) {
	if r.client == nil {
		return nil, errors.New("redis draft repository not configured")
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var draft domain.UserDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	if draft.AvailableRoles == nil {
		draft.AvailableRoles = []domain.RoleName{}
	}
	return &draft, nil
}

func (r *DraftRepository) Save(ctx context.Context, key string, draft domain.UserDraft) error {
	if r.client == nil {
		return errors.New("redis draft repository not configured")
	}

	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}
