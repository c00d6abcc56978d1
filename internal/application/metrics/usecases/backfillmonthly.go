package usecases

import (
	"context"
	"fmt"
	"time"

	"spyglass/internal/domain/learning"
	"spyglass/internal/domain/metrics"
	"spyglass/internal/domain/tenant"
	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

// BackfilledMonth pairs one backfilled monthly metric with whether the run
// created it or found it already present.
type BackfilledMonth struct {
	Metric  *metrics.MonthlyMetric
	Created bool
	Month   time.Time
}

// BackfillMonthlyMetricsUseCase fills a tenant's site monthly metrics for
// every month from the tenant's earliest recorded activity through the most
// recently completed month. Months that already have a record are skipped
// unless overwrite is set, so the backfill can be re-run safely after a
// partial failure.
type BackfillMonthlyMetricsUseCase struct {
	resolver     *tenant.Resolver
	activityRepo learning.ActivityRepository
	fillMonth    *FillMonthlyMetricUseCase
	logger       logger.Interface
}

// NewBackfillMonthlyMetricsUseCase creates a new monthly backfill use case.
func NewBackfillMonthlyMetricsUseCase(
	resolver *tenant.Resolver,
	activityRepo learning.ActivityRepository,
	fillMonth *FillMonthlyMetricUseCase,
	log logger.Interface,
) *BackfillMonthlyMetricsUseCase {
	return &BackfillMonthlyMetricsUseCase{
		resolver:     resolver,
		activityRepo: activityRepo,
		fillMonth:    fillMonth,
		logger:       log,
	}
}

// Execute backfills the tenant's monthly metrics. The range runs from the
// month of the earliest activity record through the month before the current
// one; the current month is never filled since it is still accumulating.
// Returns one entry per month processed. A tenant with no activity yields an
// empty result, not an error.
//
// Cancellation is honored between months: already completed months keep
// their records and the slice returned alongside the context error reflects
// the work finished so far.
func (uc *BackfillMonthlyMetricsUseCase) Execute(
	ctx context.Context,
	t *tenant.Tenant,
	overwrite bool,
) ([]BackfilledMonth, error) {
	courseKeys, err := uc.resolver.CourseKeysForTenant(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant courses: %w", err)
	}
	if len(courseKeys) == 0 {
		uc.logger.Infow("monthly backfill skipped, tenant has no courses", "tenant_id", t.ID())
		return []BackfilledMonth{}, nil
	}

	earliest, err := uc.activityRepo.EarliestCreatedAt(ctx, courseKeys, query.ReadReplica)
	if err != nil {
		return nil, fmt.Errorf("failed to determine earliest activity: %w", err)
	}
	if earliest == nil {
		uc.logger.Infow("monthly backfill skipped, tenant has no activity", "tenant_id", t.ID())
		return []BackfilledMonth{}, nil
	}

	lastMonth := biztime.PreviousMonth(biztime.NowUTC())
	months := biztime.MonthsBetween(*earliest, lastMonth)
	if len(months) == 0 {
		uc.logger.Infow("monthly backfill skipped, no fully elapsed months yet", "tenant_id", t.ID())
		return []BackfilledMonth{}, nil
	}

	results := make([]BackfilledMonth, 0, len(months))
	for _, month := range months {
		if err := ctx.Err(); err != nil {
			uc.logger.Warnw("monthly backfill canceled",
				"tenant_id", t.ID(),
				"completed_months", len(results),
				"total_months", len(months),
			)
			return results, err
		}

		metric, created, err := uc.fillMonth.Execute(ctx, t, month, overwrite)
		if err != nil {
			return results, fmt.Errorf("failed to backfill month %s: %w", month.Format("2006-01"), err)
		}
		results = append(results, BackfilledMonth{Metric: metric, Created: created, Month: month})
	}

	uc.logger.Infow("monthly backfill completed",
		"tenant_id", t.ID(),
		"months", len(results),
		"from", months[0].Format("2006-01"),
		"until", lastMonth.Format("2006-01"),
	)
	return results, nil
}
