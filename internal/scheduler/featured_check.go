// Package scheduler runs periodic maintenance jobs for the storefront.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/admin"
	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/entities"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// FeaturedLister lists featured rows in display order.
type FeaturedLister interface {
	ListFeatured(ctx context.Context) ([]entities.FeaturedBook, error)
}

// FeaturedCheckScheduler periodically verifies that the featured list has
// distinct books and a dense display order. It only reports; nothing is repaired.
type FeaturedCheckScheduler struct {
	featured FeaturedLister
	schedule string
	timeout  time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewFeaturedCheckScheduler creates a scheduler for the given cron schedule.
func NewFeaturedCheckScheduler(featured FeaturedLister, cfg config.Featured) *FeaturedCheckScheduler {
	return &FeaturedCheckScheduler{
		featured: featured,
		schedule: cfg.CheckSchedule,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules the check. It stops again when ctx is cancelled.
func (s *FeaturedCheckScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		runCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.RunNow(runCtx); err != nil {
			log.Error().Err(err).Msg("Featured order check failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule featured check: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Info().
		Str("schedule", s.schedule).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("Featured order check scheduled")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running check to finish and unschedules the job.
func (s *FeaturedCheckScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	done := s.cron.Stop()
	<-done.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Info().Msg("Featured order check stopped")
}

// IsRunning returns whether the job is scheduled.
func (s *FeaturedCheckScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the check runs next, or nil when not scheduled.
func (s *FeaturedCheckScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// RunNow performs one check and logs a warning per problem found.
func (s *FeaturedCheckScheduler) RunNow(ctx context.Context) ([]string, error) {
	return CheckFeaturedOrder(ctx, s.featured)
}

// CheckFeaturedOrder loads the featured rows and reports inconsistencies.
func CheckFeaturedOrder(ctx context.Context, featured FeaturedLister) ([]string, error) {
	rows, err := featured.ListFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load featured books: %w", err)
	}

	problems := admin.FeaturedOrderProblems(rows)
	for _, problem := range problems {
		log.Warn().Int("rows", len(rows)).Msg("Featured order: " + problem)
	}
	if len(problems) == 0 {
		log.Debug().Int("rows", len(rows)).Msg("Featured order is consistent")
	}
	return problems, nil
}
