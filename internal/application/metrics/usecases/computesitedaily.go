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

// ComputeSiteDailyMetricUseCase computes a tenant's site-level daily metric:
// the rollup over every course the tenant owns, with active users
// deduplicated across courses (a user active in two courses counts once).
// Upsert contract matches the course-level use case.
type ComputeSiteDailyMetricUseCase struct {
	resolver        *tenant.Resolver
	activityRepo    learning.ActivityRepository
	enrollmentRepo  learning.EnrollmentRepository
	certificateRepo learning.CertificateRepository
	collector       *appgrades.Collector
	dailyRepo       metrics.DailyMetricRepository
	logger          logger.Interface
}

// NewComputeSiteDailyMetricUseCase creates a new site daily metric use case.
func NewComputeSiteDailyMetricUseCase(
	resolver *tenant.Resolver,
	activityRepo learning.ActivityRepository,
	enrollmentRepo learning.EnrollmentRepository,
	certificateRepo learning.CertificateRepository,
	collector *appgrades.Collector,
	dailyRepo metrics.DailyMetricRepository,
	log logger.Interface,
) *ComputeSiteDailyMetricUseCase {
	return &ComputeSiteDailyMetricUseCase{
		resolver:        resolver,
		activityRepo:    activityRepo,
		enrollmentRepo:  enrollmentRepo,
		certificateRepo: certificateRepo,
		collector:       collector,
		dailyRepo:       dailyRepo,
		logger:          log,
	}
}

// Execute computes the site daily metric for (tenant, date).
func (uc *ComputeSiteDailyMetricUseCase) Execute(
	ctx context.Context,
	t *tenant.Tenant,
	dateFor time.Time,
	overwrite bool,
) (*metrics.DailyMetric, bool, error) {
	dayStart := biztime.StartOfDayUTC(dateFor)
	dayEnd := biztime.EndOfDayUTC(dateFor)

	existing, err := uc.dailyRepo.FindByKey(ctx, t.ID(), metrics.ScopeSite, "", dayStart)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up site daily metric: %w", err)
	}
	if existing != nil && !overwrite {
		return existing, false, nil
	}

	counters, err := uc.computeCounters(ctx, t, dayStart, dayEnd)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.SetCounters(*counters)
		if err := uc.dailyRepo.Upsert(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to overwrite site daily metric: %w", err)
		}
		uc.logger.Infow("site daily metric overwritten",
			"tenant_id", t.ID(),
			"date_for", dayStart.Format("2006-01-02"),
		)
		return existing, false, nil
	}

	metric, err := metrics.NewDailyMetric(t.ID(), metrics.ScopeSite, "", dateFor)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create site daily metric entity: %w", err)
	}
	metric.SetCounters(*counters)

	if err := uc.dailyRepo.Upsert(ctx, metric); err != nil {
		return nil, false, fmt.Errorf("failed to persist site daily metric: %w", err)
	}

	uc.logger.Infow("site daily metric computed",
		"tenant_id", t.ID(),
		"date_for", dayStart.Format("2006-01-02"),
		"active_users", counters.ActiveUsers,
		"registered_users", counters.RegisteredUsers,
		"new_users", counters.NewUsers,
	)
	return metric, true, nil
}

func (uc *ComputeSiteDailyMetricUseCase) computeCounters(
	ctx context.Context,
	t *tenant.Tenant,
	from, to time.Time,
) (*metrics.Counters, error) {
	courseKeys, err := uc.resolver.CourseKeysForTenant(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant courses: %w", err)
	}

	memberIDs, err := uc.resolver.MemberIDsForTenant(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant members: %w", err)
	}
	learnerIDs, err := uc.resolver.LearnerIDsForTenant(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant learners: %w", err)
	}
	memberSet := setutil.NewUintSetFrom(memberIDs)
	learnerSet := setutil.NewUintSetFrom(learnerIDs)

	// Cross-course dedup: the site-level sets union the per-course sets.
	activeUsers := setutil.NewUintSet()
	activeLearners := setutil.NewUintSet()
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
			return nil, err
		}

		activeUsers.AddAll(stats.activeUsers.ToSlice())
		activeLearners.AddAll(stats.activeLearners.ToSlice())
		enrollments += stats.enrollments
		completions += uint(stats.completions.Len())
		progressSum += stats.progressSum
		progressCount += stats.progressCount
	}

	registered, err := uc.resolver.RegisteredUserCount(ctx, t, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count registered users: %w", err)
	}
	newUsers, err := uc.resolver.NewUserCount(ctx, t, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	avgProgress := 0.0
	if progressCount > 0 {
		avgProgress = progressSum / float64(progressCount)
	}

	return &metrics.Counters{
		ActiveUsers:       uint(activeUsers.Len()),
		ActiveLearners:    uint(activeLearners.Len()),
		RegisteredUsers:   uint(registered),
		NewUsers:          uint(newUsers),
		CourseEnrollments: enrollments,
		CourseCompletions: completions,
		AverageProgress:   avgProgress,
	}, nil
}
