// Package grading contains the host-version compatibility adapters to the
// grading collaborator. Each supported platform grading shape gets one
// adapter; config selects which one the pipeline runs with.
package grading

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"spyglass/internal/domain/grades"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/logger"
)

// SubsectionAdapter reads the current platform grading shape: one row per
// graded subsection, ordered by usage key for a stable section sequence.
type SubsectionAdapter struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewSubsectionAdapter creates a grading adapter over the subsection grade table.
func NewSubsectionAdapter(db *gorm.DB, logger logger.Interface) grades.Adapter {
	return &SubsectionAdapter{
		db:     db,
		logger: logger,
	}
}

// CourseGrade returns the learner's grade assembled from subsection rows.
func (a *SubsectionAdapter) CourseGrade(ctx context.Context, userID uint, courseID string) (*grades.CourseGrade, error) {
	var rows []*models.SubsectionGradeModel

	err := a.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("usage_key").
		Find(&rows).Error
	if err != nil {
		a.logger.Errorw("failed to query subsection grades", "user_id", userID, "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to query subsection grades: %w", err)
	}
	if len(rows) == 0 {
		return nil, grades.ErrGradeNotFound
	}

	scores := make([]grades.SectionScore, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, grades.SectionScore{
			ID:       row.UsageKey,
			Earned:   row.Earned,
			Possible: row.Possible,
		})
	}

	grade := &grades.CourseGrade{
		UserID:        userID,
		CourseID:      courseID,
		SectionScores: scores,
	}
	grade.PercentGrade = grade.Progress()
	return grade, nil
}
