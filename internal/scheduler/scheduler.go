package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"assignment_hub/internal/domain"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context) (*domain.SyncStats, error)
}

// Scheduler triggers the syncer on a fixed interval. A failed run is logged
// and the next tick proceeds as usual. A tick that fires while the previous
// run is still in flight is skipped rather than overlapped.
type Scheduler struct {
	syncer     Syncer
	interval   time.Duration
	runTimeout time.Duration
	running    sync.Mutex
	logger     *slog.Logger
}

func NewScheduler(syncer Syncer, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:     syncer,
		interval:   interval,
		runTimeout: 5 * time.Minute,
		logger:     logger,
	}
}

// Start runs one sync immediately and then one per interval until ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	go s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			go s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	if !s.running.TryLock() {
		s.logger.Warn("previous sync still running, skipping tick")
		return
	}
	defer s.running.Unlock()

	syncCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	if _, err := s.syncer.Sync(syncCtx); err != nil {
		s.logger.Error("sync failed", "error", err)
	}
}
