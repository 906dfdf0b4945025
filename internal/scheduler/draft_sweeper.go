package scheduler

import (
	"fmt"

	"github.com/milicode/gym-panel/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Expirer is an in-memory store whose expired entries are removed on demand.
type Expirer interface {
	DeleteExpired()
	Count() int
}

// DraftSweeper purges expired drafts and in-flight tokens from the in-memory
// stores. Redis expires its keys itself and needs no sweeper.
type DraftSweeper struct {
	cron     *cron.Cron
	schedule string
	stores   []Expirer
}

func NewDraftSweeper(schedule string, stores ...Expirer) *DraftSweeper {
	return &DraftSweeper{
		cron:     cron.New(),
		schedule: schedule,
		stores:   stores,
	}
}

// Sweep runs one pass over every store and returns the entries left.
func (s *DraftSweeper) Sweep() int {
	remaining := 0
	for _, store := range s.stores {
		store.DeleteExpired()
		remaining += store.Count()
	}
	logger.Debug("Expired drafts swept", logger.Fields{
		"stores":    len(s.stores),
		"remaining": remaining,
	})
	return remaining
}

func (s *DraftSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Sweep() }); err != nil {
		logger.Error("Failed to add cron job for draft sweep", err, logger.Fields{
			"schedule": s.schedule,
		})
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	logger.Info("Draft sweeper started", logger.Fields{
		"schedule": s.schedule,
	})
	return nil
}

func (s *DraftSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Draft sweeper stopped")
}
