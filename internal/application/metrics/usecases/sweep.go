package usecases

import (
	"context"
	"time"

	"spyglass/internal/domain/tenant"
	"spyglass/internal/shared/biztime"
	apperrors "spyglass/internal/shared/errors"
	"spyglass/internal/shared/logger"
)

// MetricsSweeper drives the periodic pipeline runs across every tenant: the
// daily sweep computes yesterday's course and site metrics, the monthly sweep
// fills the previous month. A tenant or course that fails is logged and the
// sweep moves on; the scheduler fires again tomorrow regardless.
type MetricsSweeper struct {
	tenants     tenant.Repository
	resolver    *tenant.Resolver
	courseDaily *ComputeCourseDailyMetricUseCase
	siteDaily   *ComputeSiteDailyMetricUseCase
	fillMonth   *FillMonthlyMetricUseCase
	logger      logger.Interface
}

// NewMetricsSweeper creates a new metrics sweeper.
func NewMetricsSweeper(
	tenants tenant.Repository,
	resolver *tenant.Resolver,
	courseDaily *ComputeCourseDailyMetricUseCase,
	siteDaily *ComputeSiteDailyMetricUseCase,
	fillMonth *FillMonthlyMetricUseCase,
	log logger.Interface,
) *MetricsSweeper {
	return &MetricsSweeper{
		tenants:     tenants,
		resolver:    resolver,
		courseDaily: courseDaily,
		siteDaily:   siteDaily,
		fillMonth:   fillMonth,
		logger:      log,
	}
}

// AggregateDaily computes yesterday's metrics for every tenant. Existing
// records are overwritten so a rerun within the day picks up late activity.
func (s *MetricsSweeper) AggregateDaily(ctx context.Context) error {
	yesterday := biztime.StartOfDayUTC(biztime.NowUTC().AddDate(0, 0, -1))
	return s.sweepDay(ctx, yesterday)
}

// AggregateMonthly fills the previous month's metrics for every tenant.
func (s *MetricsSweeper) AggregateMonthly(ctx context.Context) error {
	lastMonth := biztime.PreviousMonth(biztime.NowUTC())

	tenants, err := s.tenants.List(ctx)
	if err != nil {
		return err
	}

	for _, t := range tenants {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, _, err := s.fillMonth.Execute(ctx, t, lastMonth, true); err != nil {
			s.logger.Errorw("monthly sweep failed for tenant",
				"tenant_id", t.ID(),
				"month_for", lastMonth.Format("2006-01"),
				"error", err,
			)
		}
	}
	return nil
}

func (s *MetricsSweeper) sweepDay(ctx context.Context, dateFor time.Time) error {
	tenants, err := s.tenants.List(ctx)
	if err != nil {
		return err
	}

	for _, t := range tenants {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.sweepTenantDay(ctx, t, dateFor)
	}
	return nil
}

func (s *MetricsSweeper) sweepTenantDay(ctx context.Context, t *tenant.Tenant, dateFor time.Time) {
	courseKeys, err := s.resolver.CourseKeysForTenant(ctx, t)
	if err != nil {
		s.logger.Errorw("daily sweep could not resolve tenant courses",
			"tenant_id", t.ID(),
			"error", err,
		)
		return
	}

	failed := 0
	for _, courseID := range courseKeys {
		if _, _, err := s.courseDaily.Execute(ctx, t, courseID, dateFor, true); err != nil {
			failed++
			// An unavailable source resolves itself on the next scheduled
			// run; anything else needs a look.
			if apperrors.IsUnavailableError(err) {
				s.logger.Warnw("daily sweep skipped course, data source unavailable",
					"tenant_id", t.ID(),
					"course_id", courseID,
					"error", err,
				)
			} else {
				s.logger.Errorw("daily sweep failed for course",
					"tenant_id", t.ID(),
					"course_id", courseID,
					"error", err,
				)
			}
		}
	}

	if _, _, err := s.siteDaily.Execute(ctx, t, dateFor, true); err != nil {
		s.logger.Errorw("daily sweep failed for site metric",
			"tenant_id", t.ID(),
			"error", err,
		)
		return
	}

	s.logger.Infow("daily sweep completed for tenant",
		"tenant_id", t.ID(),
		"date_for", dateFor.Format("2006-01-02"),
		"courses", len(courseKeys),
		"failed_courses", failed,
	)
}
