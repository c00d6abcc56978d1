package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"spyglass/internal/domain/grades"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/logger"
)

// legacyChapterGrade mirrors one entry of the legacy chapter_grades JSON blob.
type legacyChapterGrade struct {
	ChapterID string  `json:"chapter_id"`
	Earned    float64 `json:"earned"`
	Possible  float64 `json:"possible"`
}

// LegacyAdapter reads the legacy platform grading shape: one row per
// learner-course pair with the per-chapter scores serialized as JSON.
type LegacyAdapter struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewLegacyAdapter creates a grading adapter over the legacy course grade table.
func NewLegacyAdapter(db *gorm.DB, logger logger.Interface) grades.Adapter {
	return &LegacyAdapter{
		db:     db,
		logger: logger,
	}
}

// CourseGrade returns the learner's grade decoded from the legacy row.
func (a *LegacyAdapter) CourseGrade(ctx context.Context, userID uint, courseID string) (*grades.CourseGrade, error) {
	var row models.CourseGradeModel

	err := a.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, grades.ErrGradeNotFound
		}
		a.logger.Errorw("failed to query legacy course grade", "user_id", userID, "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to query legacy course grade: %w", err)
	}

	var chapters []legacyChapterGrade
	if len(row.ChapterGrades) > 0 {
		if err := json.Unmarshal(row.ChapterGrades, &chapters); err != nil {
			return nil, fmt.Errorf("failed to decode chapter grades for user %d course %q: %w", userID, courseID, err)
		}
	}

	scores := make([]grades.SectionScore, 0, len(chapters))
	for _, ch := range chapters {
		scores = append(scores, grades.SectionScore{
			ID:       ch.ChapterID,
			Earned:   ch.Earned,
			Possible: ch.Possible,
		})
	}

	return &grades.CourseGrade{
		UserID:        userID,
		CourseID:      courseID,
		SectionScores: scores,
		PercentGrade:  row.PercentGrade,
		LetterGrade:   row.LetterGrade,
		PassedAt:      row.PassedAt,
	}, nil
}
