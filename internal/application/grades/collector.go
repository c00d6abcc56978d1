// Package grades holds the progress collector: the application-level service
// that turns the grading collaborator's section scores into a single course
// progress fraction.
package grades

import (
	"context"
	"errors"

	"spyglass/internal/domain/grades"
	"spyglass/internal/shared/logger"
)

// Collector computes a learner's fractional course progress from graded
// section scores supplied by the grading compat adapter.
type Collector struct {
	adapter grades.Adapter
	logger  logger.Interface
}

// NewCollector creates a progress collector.
func NewCollector(adapter grades.Adapter, log logger.Interface) *Collector {
	return &Collector{
		adapter: adapter,
		logger:  log,
	}
}

// TotalProgress returns the learner's fractional course progress in
// [0.0, 1.0]. When the grading collaborator is unavailable or has no record
// for this learner, the collector returns 0.0 and logs the condition instead
// of propagating a failure: batch callers must not abort on one learner's
// missing grade.
func (c *Collector) TotalProgress(ctx context.Context, userID uint, courseID string) float64 {
	grade, err := c.adapter.CourseGrade(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, grades.ErrGradeNotFound) {
			c.logger.Debugw("no grade record for learner",
				"user_id", userID,
				"course_id", courseID,
			)
		} else {
			c.logger.Warnw("grading collaborator unavailable, treating progress as zero",
				"user_id", userID,
				"course_id", courseID,
				"error", err,
			)
		}
		return 0.0
	}
	return grade.Progress()
}

// CourseGrade exposes the full normalized grade for callers that need the
// letter grade or completion flag alongside progress. Unlike TotalProgress,
// lookup failures propagate so callers can apply their own containment.
func (c *Collector) CourseGrade(ctx context.Context, userID uint, courseID string) (*grades.CourseGrade, error) {
	return c.adapter.CourseGrade(ctx, userID, courseID)
}
