package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "draft:"

type redisDraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftRepository shares drafts between server instances. Keys
// expire ttl after the last save.
func NewRedisDraftRepository(client *redis.Client, ttl time.Duration) DraftRepository {
	return &redisDraftRepository{client: client, ttl: ttl}
}

func (r *redisDraftRepository) Get(ctx context.Context, sessionID string) (model.Draft, error) {
	raw, err := r.client.Get(ctx, draftKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewDraft(), nil
	}
	if err != nil {
		logger.Error("Failed to load draft from Redis", err, logger.Fields{
			"session_id": sessionID,
		})
		return model.Draft{}, fmt.Errorf("failed to load draft: %w", err)
	}

	var draft model.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		logger.Warn("Discarding undecodable draft", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return model.NewDraft(), nil
	}
	return draft, nil
}

func (r *redisDraftRepository) Save(ctx context.Context, sessionID string, draft model.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := r.client.Set(ctx, draftKeyPrefix+sessionID, raw, r.ttl).Err(); err != nil {
		logger.Error("Failed to save draft to Redis", err, logger.Fields{
			"session_id": sessionID,
		})
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (r *redisDraftRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, draftKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
