package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// UserModel represents the learning platform's user table. The pipeline
// reads it for membership and learner classification; the only column it
// ever writes is LastCourseActivityAt, and only from the cutover migration.
type UserModel struct {
	ID                   uint   `gorm:"primarykey"`
	Username             string `gorm:"size:150;not null;uniqueIndex"`
	Email                string `gorm:"size:254;not null"`
	IsStaff              bool   `gorm:"not null;default:false"`
	IsSuperuser          bool   `gorm:"not null;default:false"`
	InAdminGroup         bool   `gorm:"not null;default:false"`
	DateJoined           time.Time
	LastCourseActivityAt *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
