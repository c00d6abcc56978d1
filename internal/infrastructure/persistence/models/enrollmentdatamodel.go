package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// EnrollmentDataModel represents the denormalized enrollment snapshot kept
// per (tenant, user, course).
type EnrollmentDataModel struct {
	ID              uint      `gorm:"primarykey"`
	SID             string    `gorm:"size:32;not null;uniqueIndex"` // Stripe-style ID: ed_xxx
	TenantID        uint      `gorm:"not null;uniqueIndex:idx_enrollment_data_key"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_enrollment_data_key"`
	CourseID        string    `gorm:"size:255;not null;uniqueIndex:idx_enrollment_data_key"`
	EnrolledAt      time.Time `gorm:"not null"`
	IsActive        bool      `gorm:"not null;default:true"`
	ProgressPercent float64   `gorm:"not null;default:0"`
	IsComplete      bool      `gorm:"not null;default:false"`
	LetterGrade     string    `gorm:"size:16"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (EnrollmentDataModel) TableName() string {
	return constants.TableEnrollmentData
}
