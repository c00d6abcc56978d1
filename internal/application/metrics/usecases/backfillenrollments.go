package usecases

import (
	"context"
	"fmt"

	appgrades "spyglass/internal/application/grades"
	"spyglass/internal/domain/learning"
	"spyglass/internal/domain/metrics"
	"spyglass/internal/domain/tenant"
	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

const defaultEnrollmentPageSize = 500

// EnrollmentBackfillResult is one refreshed enrollment snapshot.
type EnrollmentBackfillResult struct {
	Record  *metrics.EnrollmentData
	Created bool
}

// EnrollmentBackfillError records one enrollment that could not be refreshed.
type EnrollmentBackfillError struct {
	UserID   uint
	CourseID string
	Err      error
}

func (e *EnrollmentBackfillError) Error() string {
	return fmt.Sprintf("enrollment backfill failed for user %d course %q: %v", e.UserID, e.CourseID, e.Err)
}

func (e *EnrollmentBackfillError) Unwrap() error {
	return e.Err
}

// BackfillEnrollmentDataUseCase refreshes the denormalized enrollment
// snapshots for every enrollment in a tenant's courses, and writes the
// learner-scope monthly metric for the current month alongside each snapshot.
//
// One bad enrollment never aborts the batch: its error is collected and the
// remaining records still process. The caller receives both the refreshed
// snapshots and the per-record errors.
type BackfillEnrollmentDataUseCase struct {
	resolver       *tenant.Resolver
	enrollmentRepo learning.EnrollmentRepository
	collector      *appgrades.Collector
	dataRepo       metrics.EnrollmentDataRepository
	monthlyRepo    metrics.MonthlyMetricRepository
	pageSize       int
	logger         logger.Interface
}

// NewBackfillEnrollmentDataUseCase creates a new enrollment backfill use
// case. pageSize bounds one enrollment fetch; values below 1 fall back to the
// default.
func NewBackfillEnrollmentDataUseCase(
	resolver *tenant.Resolver,
	enrollmentRepo learning.EnrollmentRepository,
	collector *appgrades.Collector,
	dataRepo metrics.EnrollmentDataRepository,
	monthlyRepo metrics.MonthlyMetricRepository,
	pageSize int,
	log logger.Interface,
) *BackfillEnrollmentDataUseCase {
	if pageSize < 1 {
		pageSize = defaultEnrollmentPageSize
	}
	return &BackfillEnrollmentDataUseCase{
		resolver:       resolver,
		enrollmentRepo: enrollmentRepo,
		collector:      collector,
		dataRepo:       dataRepo,
		monthlyRepo:    monthlyRepo,
		pageSize:       pageSize,
		logger:         log,
	}
}

// Execute refreshes every enrollment snapshot for the tenant. Returns the
// refreshed snapshots and the errors for enrollments that failed; the error
// return is reserved for failures that prevent the batch from running at all.
func (uc *BackfillEnrollmentDataUseCase) Execute(
	ctx context.Context,
	t *tenant.Tenant,
) ([]EnrollmentBackfillResult, []*EnrollmentBackfillError, error) {
	courseKeys, err := uc.resolver.CourseKeysForTenant(ctx, t)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve tenant courses: %w", err)
	}

	results := make([]EnrollmentBackfillResult, 0, uc.pageSize)
	var failures []*EnrollmentBackfillError

	for page := 1; ; page++ {
		filter := query.PageFilter{Page: page, PageSize: uc.pageSize}
		enrollments, err := uc.enrollmentRepo.ForCourses(ctx, courseKeys, filter, query.ReadReplica)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load enrollments: %w", err)
		}

		for _, rec := range enrollments {
			if err := ctx.Err(); err != nil {
				return results, failures, err
			}

			res, err := uc.refreshOne(ctx, t, rec)
			if err != nil {
				failures = append(failures, &EnrollmentBackfillError{
					UserID:   rec.UserID,
					CourseID: rec.CourseID,
					Err:      err,
				})
				uc.logger.Warnw("enrollment snapshot refresh failed",
					"tenant_id", t.ID(),
					"user_id", rec.UserID,
					"course_id", rec.CourseID,
					"error", err,
				)
				continue
			}
			results = append(results, *res)
		}

		if len(enrollments) < uc.pageSize {
			break
		}
	}

	uc.logger.Infow("enrollment data backfill completed",
		"tenant_id", t.ID(),
		"refreshed", len(results),
		"failed", len(failures),
	)
	return results, failures, nil
}

func (uc *BackfillEnrollmentDataUseCase) refreshOne(
	ctx context.Context,
	t *tenant.Tenant,
	rec *learning.EnrollmentRecord,
) (*EnrollmentBackfillResult, error) {
	progress := uc.collector.TotalProgress(ctx, rec.UserID, rec.CourseID)

	var letterGrade string
	percentGrade := progress
	isComplete := progress >= 1.0
	if grade, err := uc.collector.CourseGrade(ctx, rec.UserID, rec.CourseID); err == nil {
		letterGrade = grade.LetterGrade
		percentGrade = grade.PercentGrade
		isComplete = grade.IsComplete()
	}

	snapshot, err := uc.dataRepo.FindByKey(ctx, t.ID(), rec.UserID, rec.CourseID)
	if err != nil {
		return nil, fmt.Errorf("snapshot lookup failed: %w", err)
	}

	created := false
	if snapshot == nil {
		snapshot, err = metrics.NewEnrollmentData(t.ID(), rec.UserID, rec.CourseID, rec.EnrolledAt, rec.IsActive)
		if err != nil {
			return nil, fmt.Errorf("snapshot construction failed: %w", err)
		}
		created = true
	}
	snapshot.Refresh(rec.EnrolledAt, rec.IsActive, progress, isComplete, letterGrade)

	if err := uc.dataRepo.Upsert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("snapshot upsert failed: %w", err)
	}

	if err := uc.upsertLearnerMonthly(ctx, t, rec, percentGrade, letterGrade, isComplete); err != nil {
		return nil, err
	}

	return &EnrollmentBackfillResult{Record: snapshot, Created: created}, nil
}

// upsertLearnerMonthly keeps the learner's current-month grade record in step
// with the refreshed snapshot.
func (uc *BackfillEnrollmentDataUseCase) upsertLearnerMonthly(
	ctx context.Context,
	t *tenant.Tenant,
	rec *learning.EnrollmentRecord,
	percentGrade float64,
	letterGrade string,
	isComplete bool,
) error {
	month := biztime.MonthOf(biztime.NowUTC())

	metric, err := uc.monthlyRepo.FindByKey(ctx, t.ID(), metrics.ScopeLearner, rec.CourseID, rec.UserID, month)
	if err != nil {
		return fmt.Errorf("learner monthly lookup failed: %w", err)
	}
	if metric == nil {
		metric, err = metrics.NewMonthlyMetric(t.ID(), metrics.ScopeLearner, rec.CourseID, rec.UserID, month)
		if err != nil {
			return fmt.Errorf("learner monthly construction failed: %w", err)
		}
	}
	if err := metric.SetGrade(percentGrade, letterGrade, isComplete); err != nil {
		return fmt.Errorf("learner monthly grade update failed: %w", err)
	}
	if err := uc.monthlyRepo.Upsert(ctx, metric); err != nil {
		return fmt.Errorf("learner monthly upsert failed: %w", err)
	}
	return nil
}
