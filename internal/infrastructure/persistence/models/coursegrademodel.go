package models

import (
	"time"

	"gorm.io/datatypes"

	"spyglass/internal/shared/constants"
)

// CourseGradeModel is the legacy grading shape: one row per learner-course
// pair with the per-chapter scores serialized as JSON.
type CourseGradeModel struct {
	ID            uint           `gorm:"primarykey"`
	UserID        uint           `gorm:"not null;uniqueIndex:idx_course_grade_user_course"`
	CourseID      string         `gorm:"size:255;not null;uniqueIndex:idx_course_grade_user_course"`
	ChapterGrades datatypes.JSON `gorm:"not null"`
	PercentGrade  float64        `gorm:"not null;default:0"`
	LetterGrade   string         `gorm:"size:16"`
	PassedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (CourseGradeModel) TableName() string {
	return constants.TableCourseGrades
}
