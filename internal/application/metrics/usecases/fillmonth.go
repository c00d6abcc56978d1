package usecases

import (
	"context"
	"fmt"
	"time"

	appgrades "spyglass/internal/application/grades"
	"spyglass/internal/domain/learning"
	"spyglass/internal/domain/metrics"
	"spyglass/internal/domain/tenant"
	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
	"spyglass/internal/shared/utils/setutil"
)

// FillMonthlyMetricUseCase computes a tenant's site-level monthly metric for
// one calendar month.
//
// Monthly active users come from the raw activity store, never from summing
// the daily records: a user active on ten days of the month still counts
// once. The window is [month start, next month start) in the business
// timezone.
type FillMonthlyMetricUseCase struct {
	resolver        *tenant.Resolver
	activityRepo    learning.ActivityRepository
	enrollmentRepo  learning.EnrollmentRepository
	certificateRepo learning.CertificateRepository
	collector       *appgrades.Collector
	monthlyRepo     metrics.MonthlyMetricRepository
	logger          logger.Interface
}

// NewFillMonthlyMetricUseCase creates a new monthly rollup use case.
func NewFillMonthlyMetricUseCase(
	resolver *tenant.Resolver,
	activityRepo learning.ActivityRepository,
	enrollmentRepo learning.EnrollmentRepository,
	certificateRepo learning.CertificateRepository,
	collector *appgrades.Collector,
	monthlyRepo metrics.MonthlyMetricRepository,
	log logger.Interface,
) *FillMonthlyMetricUseCase {
	return &FillMonthlyMetricUseCase{
		resolver:        resolver,
		activityRepo:    activityRepo,
		enrollmentRepo:  enrollmentRepo,
		certificateRepo: certificateRepo,
		collector:       collector,
		monthlyRepo:     monthlyRepo,
		logger:          log,
	}
}

// Execute computes the site monthly metric for (tenant, month). monthFor may
// be any instant within the month; it is normalized to the month start.
// Returns the record and whether it was newly created. An existing record is
// returned untouched unless overwrite is set.
func (uc *FillMonthlyMetricUseCase) Execute(
	ctx context.Context,
	t *tenant.Tenant,
	monthFor time.Time,
	overwrite bool,
) (*metrics.MonthlyMetric, bool, error) {
	monthStart := biztime.MonthOf(monthFor)
	monthEnd := monthStart.AddDate(0, 1, 0)

	existing, err := uc.monthlyRepo.FindByKey(ctx, t.ID(), metrics.ScopeSite, "", 0, monthStart)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up monthly metric: %w", err)
	}
	if existing != nil && !overwrite {
		return existing, false, nil
	}

	counters, mau, err := uc.computeMonth(ctx, t, monthStart, monthEnd)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.SetCounters(*counters, mau)
		if err := uc.monthlyRepo.Upsert(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to overwrite monthly metric: %w", err)
		}
		uc.logger.Infow("site monthly metric overwritten",
			"tenant_id", t.ID(),
			"month_for", monthStart.Format("2006-01"),
			"monthly_active_users", mau,
		)
		return existing, false, nil
	}

	metric, err := metrics.NewMonthlyMetric(t.ID(), metrics.ScopeSite, "", 0, monthFor)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create monthly metric entity: %w", err)
	}
	metric.SetCounters(*counters, mau)

	if err := uc.monthlyRepo.Upsert(ctx, metric); err != nil {
		return nil, false, fmt.Errorf("failed to persist monthly metric: %w", err)
	}

	uc.logger.Infow("site monthly metric computed",
		"tenant_id", t.ID(),
		"month_for", monthStart.Format("2006-01"),
		"monthly_active_users", mau,
		"registered_users", counters.RegisteredUsers,
	)
	return metric, true, nil
}

func (uc *FillMonthlyMetricUseCase) computeMonth(
	ctx context.Context,
	t *tenant.Tenant,
	from, to time.Time,
) (*metrics.Counters, uint, error) {
	courseKeys, err := uc.resolver.CourseKeysForTenant(ctx, t)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve tenant courses: %w", err)
	}

	memberIDs, err := uc.resolver.MemberIDsForTenant(ctx, t)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve tenant members: %w", err)
	}
	learnerIDs, err := uc.resolver.LearnerIDsForTenant(ctx, t)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve tenant learners: %w", err)
	}
	memberSet := setutil.NewUintSetFrom(memberIDs)
	learnerSet := setutil.NewUintSetFrom(learnerIDs)

	// MAU over the raw activity for the whole month, distinct per user.
	activeIDs, err := uc.activityRepo.ActiveUserIDs(ctx, courseKeys, from, to, query.ReadReplica)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query monthly active users: %w", err)
	}
	mauSet := setutil.NewUintSet()
	activeLearners := setutil.NewUintSet()
	for _, uid := range activeIDs {
		if !memberSet.Has(uid) {
			continue
		}
		mauSet.Add(uid)
		if learnerSet.Has(uid) {
			activeLearners.Add(uid)
		}
	}

	var enrollments, completions uint
	var progressSum float64
	var progressCount int
	for _, courseID := range courseKeys {
		stats, err := collectCourseWindowStats(
			ctx,
			uc.activityRepo,
			uc.enrollmentRepo,
			uc.certificateRepo,
			uc.collector,
			courseID,
			from, to,
			memberSet, learnerSet,
			query.ReadReplica,
		)
		if err != nil {
			return nil, 0, err
		}
		enrollments += stats.enrollments
		completions += uint(stats.completions.Len())
		progressSum += stats.progressSum
		progressCount += stats.progressCount
	}

	registered, err := uc.resolver.RegisteredUserCount(ctx, t, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count registered users: %w", err)
	}
	newUsers, err := uc.resolver.NewUserCount(ctx, t, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count new users: %w", err)
	}

	avgProgress := 0.0
	if progressCount > 0 {
		avgProgress = progressSum / float64(progressCount)
	}

	return &metrics.Counters{
		ActiveUsers:       uint(mauSet.Len()),
		ActiveLearners:    uint(activeLearners.Len()),
		RegisteredUsers:   uint(registered),
		NewUsers:          uint(newUsers),
		CourseEnrollments: enrollments,
		CourseCompletions: completions,
		AverageProgress:   avgProgress,
	}, uint(mauSet.Len()), nil
}
