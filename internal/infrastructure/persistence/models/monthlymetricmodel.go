package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// MonthlyMetricModel represents the database persistence model for monthly
// metric snapshots. UserID is zero except for learner scope.
type MonthlyMetricModel struct {
	ID                 uint      `gorm:"primarykey"`
	SID                string    `gorm:"size:32;not null;uniqueIndex"` // Stripe-style ID: mm_xxx
	TenantID           uint      `gorm:"not null;uniqueIndex:idx_monthly_metric_key"`
	Scope              string    `gorm:"size:16;not null;uniqueIndex:idx_monthly_metric_key"`
	CourseID           string    `gorm:"size:255;not null;default:'';uniqueIndex:idx_monthly_metric_key"`
	UserID             uint      `gorm:"not null;default:0;uniqueIndex:idx_monthly_metric_key;index:idx_monthly_metric_user"`
	MonthFor           time.Time `gorm:"type:date;not null;uniqueIndex:idx_monthly_metric_key"`
	ActiveUsers        uint      `gorm:"not null;default:0"`
	ActiveLearners     uint      `gorm:"not null;default:0"`
	RegisteredUsers    uint      `gorm:"not null;default:0"`
	NewUsers           uint      `gorm:"not null;default:0"`
	CourseEnrollments  uint      `gorm:"not null;default:0"`
	CourseCompletions  uint      `gorm:"not null;default:0"`
	AverageProgress    float64   `gorm:"not null;default:0"`
	MonthlyActiveUsers uint      `gorm:"not null;default:0"`
	PercentGrade       float64   `gorm:"not null;default:0"`
	LetterGrade        string    `gorm:"size:16"`
	IsComplete         bool      `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (MonthlyMetricModel) TableName() string {
	return constants.TableMonthlyMetrics
}
