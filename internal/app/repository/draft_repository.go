package repository

import (
	"context"
	"sync"
	"time"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/pkg/logger"
	gocache "github.com/patrickmn/go-cache"
)

// DraftRepository stores one wizard draft per session. Get on an unknown or
// expired session returns a fresh default draft, never an error.
type DraftRepository interface {
	Get(ctx context.Context, sessionID string) (model.Draft, error)
	Save(ctx context.Context, sessionID string, draft model.Draft) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryDraftRepository struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
}

// MemoryDraftRepository is the single-instance store. Expired drafts are
// removed by DeleteExpired, which the sweeper calls on a schedule.
type MemoryDraftRepository interface {
	DraftRepository
	DeleteExpired()
	Count() int
}

func NewMemoryDraftRepository(ttl time.Duration) MemoryDraftRepository {
	return &memoryDraftRepository{
		cache: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

func (r *memoryDraftRepository) Get(ctx context.Context, sessionID string) (model.Draft, error) {
	value, found := r.cache.Get(sessionID)
	if !found {
		return model.NewDraft(), nil
	}

	draft, ok := value.(model.Draft)
	if !ok {
		logger.Error("Unexpected draft type in cache", nil, logger.Fields{
			"session_id": sessionID,
		})
		return model.NewDraft(), nil
	}
	return draft, nil
}

func (r *memoryDraftRepository) Save(ctx context.Context, sessionID string, draft model.Draft) error {
	r.cache.Set(sessionID, draft, r.ttl)
	logger.Debug("Draft saved", logger.Fields{
		"session_id": sessionID,
		"step":       draft.Step,
	})
	return nil
}

func (r *memoryDraftRepository) Delete(ctx context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}

func (r *memoryDraftRepository) DeleteExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.DeleteExpired()
}

func (r *memoryDraftRepository) Count() int {
	return r.cache.ItemCount()
}
