package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// CourseEnrollmentModel represents a learner's enrollment in a course.
type CourseEnrollmentModel struct {
	ID         uint      `gorm:"primarykey"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID   string    `gorm:"size:255;not null;uniqueIndex:idx_enrollment_user_course;index:idx_enrollment_course"`
	EnrolledAt time.Time `gorm:"not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (CourseEnrollmentModel) TableName() string {
	return constants.TableCourseEnrollments
}
