package usecases

import (
	"context"
	"fmt"

	appgrades "spyglass/internal/application/grades"
	"spyglass/internal/domain/learning"
	"spyglass/internal/domain/metrics"
	"spyglass/internal/domain/tenant"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

// ProgressBackfillError records one learner-course pair whose grade refresh
// failed. CourseID alone is set when the whole course could not be loaded.
type ProgressBackfillError struct {
	UserID   uint
	CourseID string
	Err      error
}

func (e *ProgressBackfillError) Error() string {
	if e.UserID == 0 {
		return fmt.Sprintf("progress backfill failed for course %q: %v", e.CourseID, e.Err)
	}
	return fmt.Sprintf("progress backfill failed for user %d course %q: %v", e.UserID, e.CourseID, e.Err)
}

func (e *ProgressBackfillError) Unwrap() error {
	return e.Err
}

// BackfillLearnerProgressUseCase re-reads each enrolled learner's current
// grade and pushes it onto the learner's most recent monthly metric record.
// Learners with no monthly record yet are skipped; the enrollment backfill is
// the path that creates those.
//
// Containment is two-level: a course that fails to load is recorded and the
// remaining courses proceed, and within a course a learner that fails is
// recorded and the remaining learners proceed.
type BackfillLearnerProgressUseCase struct {
	resolver       *tenant.Resolver
	enrollmentRepo learning.EnrollmentRepository
	collector      *appgrades.Collector
	monthlyRepo    metrics.MonthlyMetricRepository
	logger         logger.Interface
}

// NewBackfillLearnerProgressUseCase creates a new progress backfill use case.
func NewBackfillLearnerProgressUseCase(
	resolver *tenant.Resolver,
	enrollmentRepo learning.EnrollmentRepository,
	collector *appgrades.Collector,
	monthlyRepo metrics.MonthlyMetricRepository,
	log logger.Interface,
) *BackfillLearnerProgressUseCase {
	return &BackfillLearnerProgressUseCase{
		resolver:       resolver,
		enrollmentRepo: enrollmentRepo,
		collector:      collector,
		monthlyRepo:    monthlyRepo,
		logger:         log,
	}
}

// Execute refreshes learner progress across the tenant's courses. Returns
// the number of records updated, the number of learners skipped for lack of
// a monthly record, and the per-unit errors.
func (uc *BackfillLearnerProgressUseCase) Execute(
	ctx context.Context,
	t *tenant.Tenant,
) (updated int, skipped int, failures []*ProgressBackfillError, err error) {
	courseKeys, err := uc.resolver.CourseKeysForTenant(ctx, t)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to resolve tenant courses: %w", err)
	}

	for _, courseID := range courseKeys {
		if err := ctx.Err(); err != nil {
			return updated, skipped, failures, err
		}

		enrollments, err := uc.enrollmentRepo.ForCourse(ctx, courseID, query.ReadReplica)
		if err != nil {
			failures = append(failures, &ProgressBackfillError{CourseID: courseID, Err: err})
			uc.logger.Warnw("progress backfill could not load course enrollments",
				"tenant_id", t.ID(),
				"course_id", courseID,
				"error", err,
			)
			continue
		}

		for _, rec := range enrollments {
			ok, found, err := uc.refreshLearner(ctx, t, rec)
			if err != nil {
				failures = append(failures, &ProgressBackfillError{
					UserID:   rec.UserID,
					CourseID: courseID,
					Err:      err,
				})
				continue
			}
			if !found {
				skipped++
				continue
			}
			if ok {
				updated++
			}
		}
	}

	uc.logger.Infow("learner progress backfill completed",
		"tenant_id", t.ID(),
		"updated", updated,
		"skipped", skipped,
		"failed", len(failures),
	)
	return updated, skipped, failures, nil
}

func (uc *BackfillLearnerProgressUseCase) refreshLearner(
	ctx context.Context,
	t *tenant.Tenant,
	rec *learning.EnrollmentRecord,
) (updated bool, found bool, err error) {
	metric, err := uc.monthlyRepo.FindLatestForLearner(ctx, t.ID(), rec.UserID, rec.CourseID)
	if err != nil {
		return false, false, fmt.Errorf("learner monthly lookup failed: %w", err)
	}
	if metric == nil {
		return false, false, nil
	}

	grade, err := uc.collector.CourseGrade(ctx, rec.UserID, rec.CourseID)
	if err != nil {
		return false, true, fmt.Errorf("grade lookup failed: %w", err)
	}

	if err := metric.SetGrade(grade.PercentGrade, grade.LetterGrade, grade.IsComplete()); err != nil {
		return false, true, fmt.Errorf("grade update failed: %w", err)
	}
	if err := uc.monthlyRepo.Upsert(ctx, metric); err != nil {
		return false, true, fmt.Errorf("learner monthly upsert failed: %w", err)
	}
	return true, true, nil
}
