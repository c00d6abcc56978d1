package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// SubsectionGradeModel is the current-platform grading shape: one row per
// graded subsection a learner has attempted.
type SubsectionGradeModel struct {
	ID               uint    `gorm:"primarykey"`
	UserID           uint    `gorm:"not null;index:idx_subsection_user_course"`
	CourseID         string  `gorm:"size:255;not null;index:idx_subsection_user_course"`
	UsageKey         string  `gorm:"size:255;not null"`
	Earned           float64 `gorm:"not null;default:0"`
	Possible         float64 `gorm:"not null;default:0"`
	FirstAttemptedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (SubsectionGradeModel) TableName() string {
	return constants.TableSubsectionGrades
}
