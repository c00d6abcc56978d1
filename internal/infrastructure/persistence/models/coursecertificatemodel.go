package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// CourseCertificateModel marks a completion certificate issued to a learner.
type CourseCertificateModel struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CourseID  string    `gorm:"size:255;not null;uniqueIndex:idx_certificate_user_course;index:idx_certificate_course"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (CourseCertificateModel) TableName() string {
	return constants.TableCourseCertificates
}
