package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/config"
)

// AuditPruner deletes audit events older than the retention window.
type AuditPruner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// AuditRetentionScheduler prunes the audit trail on a cron schedule.
type AuditRetentionScheduler struct {
	pruner    AuditPruner
	retention time.Duration
	schedule  string
	timeout   time.Duration

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewAuditRetentionScheduler creates the pruning job.
func NewAuditRetentionScheduler(pruner AuditPruner, cfg config.Audit) *AuditRetentionScheduler {
	return &AuditRetentionScheduler{
		pruner:    pruner,
		retention: cfg.Retention,
		schedule:  cfg.RetentionSchedule,
		timeout:   time.Minute,
		cron:      cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules pruning. A zero retention keeps every event and schedules nothing.
func (s *AuditRetentionScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning || s.retention <= 0 {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.RunNow(ctx); err != nil {
			log.Error().Err(err).Msg("Audit retention failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit retention: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Info().
		Str("schedule", s.schedule).
		Dur("retention", s.retention).
		Msg("Audit retention scheduled")
	return nil
}

// Stop waits for a running prune to finish and unschedules the job.
func (s *AuditRetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false
}

// IsRunning returns whether the job is scheduled.
func (s *AuditRetentionScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// RunNow deletes expired events once and returns how many were removed.
func (s *AuditRetentionScheduler) RunNow(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	deleted, err := s.pruner.DeleteOldEvents(ctx, s.retention)
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit events: %w", err)
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Dur("retention", s.retention).Msg("Pruned audit events")
	}
	return deleted, nil
}
