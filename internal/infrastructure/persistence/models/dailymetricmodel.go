package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// DailyMetricModel represents the database persistence model for daily
// metric snapshots. The unique key serializes concurrent writers for the
// same (tenant, scope, course, date) while unrelated keys proceed freely.
type DailyMetricModel struct {
	ID                uint      `gorm:"primarykey"`
	SID               string    `gorm:"size:32;not null;uniqueIndex"` // Stripe-style ID: dm_xxx
	TenantID          uint      `gorm:"not null;uniqueIndex:idx_daily_metric_key"`
	Scope             string    `gorm:"size:16;not null;uniqueIndex:idx_daily_metric_key"`
	CourseID          string    `gorm:"size:255;not null;default:'';uniqueIndex:idx_daily_metric_key"`
	DateFor           time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_metric_key"`
	ActiveUsers       uint      `gorm:"not null;default:0"`
	ActiveLearners    uint      `gorm:"not null;default:0"`
	RegisteredUsers   uint      `gorm:"not null;default:0"`
	NewUsers          uint      `gorm:"not null;default:0"`
	CourseEnrollments uint      `gorm:"not null;default:0"`
	CourseCompletions uint      `gorm:"not null;default:0"`
	AverageProgress   float64   `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (DailyMetricModel) TableName() string {
	return constants.TableDailyMetrics
}
