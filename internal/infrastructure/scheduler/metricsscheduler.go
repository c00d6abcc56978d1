// Package scheduler runs the periodic metric pipeline tasks.
package scheduler

import (
	"context"
	"sync"
	"time"

	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/logger"
)

// MetricsAggregator defines the interface for the periodic pipeline runs.
type MetricsAggregator interface {
	// AggregateDaily computes yesterday's daily metrics for every tenant.
	AggregateDaily(ctx context.Context) error
	// AggregateMonthly fills the previous month's metrics for every tenant.
	AggregateMonthly(ctx context.Context) error
}

// MetricsScheduler runs periodic metric aggregation tasks.
// - Daily aggregation: runs at 03:00 business timezone every day
// - Monthly aggregation: runs at 04:00 business timezone on the 1st of each month
type MetricsScheduler struct {
	aggregator MetricsAggregator
	logger     logger.Interface
	stopChan   chan struct{}
	stopOnce   sync.Once      // Ensures Stop() is only called once
	wg         sync.WaitGroup // Tracks running goroutines for graceful shutdown
}

// NewMetricsScheduler creates a new metrics scheduler.
func NewMetricsScheduler(aggregator MetricsAggregator, logger logger.Interface) *MetricsScheduler {
	return &MetricsScheduler{
		aggregator: aggregator,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Start launches the scheduling goroutines and returns.
func (s *MetricsScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting metrics scheduler")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runDailyAggregation(ctx)
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runMonthlyAggregation(ctx)
	}()
}

// Stop stops the scheduler gracefully and waits for all goroutines to complete.
// Safe to call multiple times - only the first call will actually stop the scheduler.
func (s *MetricsScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping metrics scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("metrics scheduler stopped")
	})
}

// runDailyAggregation runs the daily aggregation task at 03:00 business timezone.
func (s *MetricsScheduler) runDailyAggregation(ctx context.Context) {
	for {
		nextRun := s.nextDailyRunTime()
		duration := time.Until(nextRun)

		s.logger.Infow("scheduled next daily aggregation",
			"next_run", nextRun.Format(time.RFC3339),
			"duration", duration,
		)

		timer := time.NewTimer(duration)

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Infow("daily aggregation scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			timer.Stop()
			s.logger.Infow("daily aggregation scheduler stopped")
			return
		case <-timer.C:
			s.executeDailyAggregation(ctx)
		}
	}
}

// runMonthlyAggregation runs the monthly aggregation task at 04:00 on the 1st of each month.
func (s *MetricsScheduler) runMonthlyAggregation(ctx context.Context) {
	for {
		nextRun := s.nextMonthlyRunTime()
		duration := time.Until(nextRun)

		s.logger.Infow("scheduled next monthly aggregation",
			"next_run", nextRun.Format(time.RFC3339),
			"duration", duration,
		)

		timer := time.NewTimer(duration)

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Infow("monthly aggregation scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			timer.Stop()
			s.logger.Infow("monthly aggregation scheduler stopped")
			return
		case <-timer.C:
			s.executeMonthlyAggregation(ctx)
		}
	}
}

// nextDailyRunTime calculates the next 03:00 in business timezone.
func (s *MetricsScheduler) nextDailyRunTime() time.Time {
	loc := biztime.Location()
	now := time.Now().In(loc)

	target := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, loc)
	if now.After(target) {
		target = target.AddDate(0, 0, 1)
	}

	return target
}

// nextMonthlyRunTime calculates the next 1st day 04:00 in business timezone.
func (s *MetricsScheduler) nextMonthlyRunTime() time.Time {
	loc := biztime.Location()
	now := time.Now().In(loc)

	target := time.Date(now.Year(), now.Month(), 1, 4, 0, 0, 0, loc)
	if now.After(target) {
		target = target.AddDate(0, 1, 0)
	}

	return target
}

// executeDailyAggregation performs the daily aggregation task.
func (s *MetricsScheduler) executeDailyAggregation(ctx context.Context) {
	s.logger.Infow("executing daily metric aggregation")

	startTime := time.Now()
	if err := s.aggregator.AggregateDaily(ctx); err != nil {
		s.logger.Errorw("daily metric aggregation failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	s.logger.Infow("daily metric aggregation completed successfully",
		"duration", time.Since(startTime),
	)
}

// executeMonthlyAggregation performs the monthly aggregation task.
func (s *MetricsScheduler) executeMonthlyAggregation(ctx context.Context) {
	s.logger.Infow("executing monthly metric aggregation")

	startTime := time.Now()
	if err := s.aggregator.AggregateMonthly(ctx); err != nil {
		s.logger.Errorw("monthly metric aggregation failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	s.logger.Infow("monthly metric aggregation completed successfully",
		"duration", time.Since(startTime),
	)
}
