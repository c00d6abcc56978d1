package usecases

import (
	"context"
	"fmt"
	"time"

	appgrades "spyglass/internal/application/grades"
	"spyglass/internal/domain/learning"
	"spyglass/internal/shared/query"
	"spyglass/internal/shared/utils/setutil"
)

// courseWindowStats holds the per-course aggregates for one metric window.
type courseWindowStats struct {
	activeUsers    *setutil.UintSet // tenant members with activity in the window
	activeLearners *setutil.UintSet // active users minus staff/admin accounts
	completions    *setutil.UintSet // enrolled learners at 100% progress or holding a certificate
	enrollments    uint             // cumulative enrollments as of window end
	progressSum    float64
	progressCount  int
}

// collectCourseWindowStats computes the aggregates for one course over
// [from, to). memberSet and learnerSet scope the raw activity to the tenant:
// no record from a user outside memberSet ever contributes.
func collectCourseWindowStats(
	ctx context.Context,
	activityRepo learning.ActivityRepository,
	enrollmentRepo learning.EnrollmentRepository,
	certificateRepo learning.CertificateRepository,
	collector *appgrades.Collector,
	courseID string,
	from, to time.Time,
	memberSet, learnerSet *setutil.UintSet,
	pref query.ReadPreference,
) (*courseWindowStats, error) {
	stats := &courseWindowStats{
		activeUsers:    setutil.NewUintSet(),
		activeLearners: setutil.NewUintSet(),
		completions:    setutil.NewUintSet(),
	}

	activeIDs, err := activityRepo.ActiveUserIDsForCourse(ctx, courseID, from, to, pref)
	if err != nil {
		return nil, fmt.Errorf("failed to query active users for course %q: %w", courseID, err)
	}
	for _, uid := range activeIDs {
		if !memberSet.Has(uid) {
			continue
		}
		stats.activeUsers.Add(uid)
		if learnerSet.Has(uid) {
			stats.activeLearners.Add(uid)
		}
	}

	// Average progress is the mean over active learners for the window.
	for _, uid := range stats.activeLearners.ToSlice() {
		stats.progressSum += collector.TotalProgress(ctx, uid, courseID)
		stats.progressCount++
	}

	enrollmentCount, err := enrollmentRepo.CountForCourseAsOf(ctx, courseID, to, pref)
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments for course %q: %w", courseID, err)
	}
	stats.enrollments = uint(enrollmentCount)

	// Completions: certificate holders as of window end, plus enrolled
	// learners whose collected progress has reached 100%.
	certHolders, err := certificateRepo.UserIDsForCourseAsOf(ctx, courseID, to, pref)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates for course %q: %w", courseID, err)
	}
	for _, uid := range certHolders {
		if memberSet.Has(uid) {
			stats.completions.Add(uid)
		}
	}

	enrollments, err := enrollmentRepo.ForCourse(ctx, courseID, pref)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments for course %q: %w", courseID, err)
	}
	for _, rec := range enrollments {
		// The window is [from, to): an enrollment stamped exactly at the
		// window end belongs to the next period.
		if !rec.EnrolledAt.Before(to) || !learnerSet.Has(rec.UserID) || stats.completions.Has(rec.UserID) {
			continue
		}
		if collector.TotalProgress(ctx, rec.UserID, courseID) >= 1.0 {
			stats.completions.Add(rec.UserID)
		}
	}

	return stats, nil
}

// averageProgress returns the mean progress fraction, 0.0 when no active users.
func (s *courseWindowStats) averageProgress() float64 {
	if s.progressCount == 0 {
		return 0.0
	}
	return s.progressSum / float64(s.progressCount)
}
