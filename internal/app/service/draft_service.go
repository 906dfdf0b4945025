package service

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/app/repository"
	"github.com/milicode/gym-panel/internal/wizard"
	"github.com/milicode/gym-panel/pkg/logger"
)

// DraftObserver is told about every stored draft change.
type DraftObserver interface {
	DraftChanged(sessionID string, draft model.Draft)
}

// DraftService is the dispatch interface over the per-session draft. It does
// no validation; the wizard forms do that before dispatching.
type DraftService interface {
	Current(ctx context.Context, sessionID string) (model.Draft, error)
	Dispatch(ctx context.Context, sessionID string, actions ...wizard.Action) (model.Draft, error)
	// Update derives the actions from the stored draft under the session lock.
	Update(ctx context.Context, sessionID string, plan func(model.Draft) []wizard.Action) (model.Draft, error)
}

type draftService struct {
	repo      repository.DraftRepository
	observers []DraftObserver
	// sessions hash onto a fixed set of locks
	locks [lockStripes]sync.Mutex
}

const lockStripes = 64

func NewDraftService(repo repository.DraftRepository, observers ...DraftObserver) DraftService {
	return &draftService{
		repo:      repo,
		observers: observers,
	}
}

func (s *draftService) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *draftService) Current(ctx context.Context, sessionID string) (model.Draft, error) {
	return s.repo.Get(ctx, sessionID)
}

func (s *draftService) Dispatch(ctx context.Context, sessionID string, actions ...wizard.Action) (model.Draft, error) {
	return s.Update(ctx, sessionID, func(model.Draft) []wizard.Action { return actions })
}

func (s *draftService) Update(ctx context.Context, sessionID string, plan func(model.Draft) []wizard.Action) (model.Draft, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	current, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return model.Draft{}, err
	}

	actions := plan(current)
	if len(actions) == 0 {
		return current, nil
	}

	next := wizard.Reduce(current, actions...)
	if err := s.repo.Save(ctx, sessionID, next); err != nil {
		logger.Error("Failed to save draft", err, logger.Fields{
			"session_id": sessionID,
			"actions":    wizard.ActionNames(actions),
		})
		return model.Draft{}, err
	}

	logger.Debug("Draft actions dispatched", logger.Fields{
		"session_id": sessionID,
		"actions":    wizard.ActionNames(actions),
		"step":       next.Step,
	})

	for _, o := range s.observers {
		o.DraftChanged(sessionID, next)
	}
	return next, nil
}
