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

// ComputeCourseDailyMetricUseCase computes one course's daily metric snapshot
// for a tenant and date.
//
// Upsert contract: if a record for the key already exists and overwrite is
// false, it is returned unchanged with created=false and nothing is
// recomputed. With overwrite=true the counters are recomputed and replaced in
// place. Replayed invocations are therefore idempotent regardless of how
// often the scheduler delivers them.
type ComputeCourseDailyMetricUseCase struct {
	resolver        *tenant.Resolver
	activityRepo    learning.ActivityRepository
	enrollmentRepo  learning.EnrollmentRepository
	certificateRepo learning.CertificateRepository
	collector       *appgrades.Collector
	dailyRepo       metrics.DailyMetricRepository
	logger          logger.Interface
}

// NewComputeCourseDailyMetricUseCase creates a new course daily metric use case.
func NewComputeCourseDailyMetricUseCase(
	resolver *tenant.Resolver,
	activityRepo learning.ActivityRepository,
	enrollmentRepo learning.EnrollmentRepository,
	certificateRepo learning.CertificateRepository,
	collector *appgrades.Collector,
	dailyRepo metrics.DailyMetricRepository,
	log logger.Interface,
) *ComputeCourseDailyMetricUseCase {
	return &ComputeCourseDailyMetricUseCase{
		resolver:        resolver,
		activityRepo:    activityRepo,
		enrollmentRepo:  enrollmentRepo,
		certificateRepo: certificateRepo,
		collector:       collector,
		dailyRepo:       dailyRepo,
		logger:          log,
	}
}

// Execute computes the daily metric for (tenant, course, date). The window is
// [date 00:00, date+1d) in the business timezone. Returns the record and
// whether it was newly created.
func (uc *ComputeCourseDailyMetricUseCase) Execute(
	ctx context.Context,
	t *tenant.Tenant,
	courseID string,
	dateFor time.Time,
	overwrite bool,
) (*metrics.DailyMetric, bool, error) {
	dayStart := biztime.StartOfDayUTC(dateFor)
	dayEnd := biztime.EndOfDayUTC(dateFor)

	existing, err := uc.dailyRepo.FindByKey(ctx, t.ID(), metrics.ScopeCourse, courseID, dayStart)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up daily metric for course %q: %w", courseID, err)
	}
	if existing != nil && !overwrite {
		return existing, false, nil
	}

	counters, err := uc.computeCounters(ctx, t, courseID, dayStart, dayEnd)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.SetCounters(*counters)
		if err := uc.dailyRepo.Upsert(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to overwrite daily metric for course %q: %w", courseID, err)
		}
		uc.logger.Infow("course daily metric overwritten",
			"tenant_id", t.ID(),
			"course_id", courseID,
			"date_for", dayStart.Format("2006-01-02"),
		)
		return existing, false, nil
	}

	metric, err := metrics.NewDailyMetric(t.ID(), metrics.ScopeCourse, courseID, dateFor)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create daily metric entity: %w", err)
	}
	metric.SetCounters(*counters)

	if err := uc.dailyRepo.Upsert(ctx, metric); err != nil {
		return nil, false, fmt.Errorf("failed to persist daily metric for course %q: %w", courseID, err)
	}

	uc.logger.Infow("course daily metric computed",
		"tenant_id", t.ID(),
		"course_id", courseID,
		"date_for", dayStart.Format("2006-01-02"),
		"active_users", counters.ActiveUsers,
		"completions", counters.CourseCompletions,
	)
	return metric, true, nil
}

func (uc *ComputeCourseDailyMetricUseCase) computeCounters(
	ctx context.Context,
	t *tenant.Tenant,
	courseID string,
	from, to time.Time,
) (*metrics.Counters, error) {
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

	return &metrics.Counters{
		ActiveUsers:       uint(stats.activeUsers.Len()),
		ActiveLearners:    uint(stats.activeLearners.Len()),
		CourseEnrollments: stats.enrollments,
		CourseCompletions: uint(stats.completions.Len()),
		AverageProgress:   stats.averageProgress(),
	}, nil
}
