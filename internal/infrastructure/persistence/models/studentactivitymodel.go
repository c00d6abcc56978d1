package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// StudentActivityModel represents one recorded learner interaction with
// course content. The table is append-only from the platform side;
// modified_at advances when the learner revisits the same block.
type StudentActivityModel struct {
	ID         uint      `gorm:"primarykey"`
	UserID     uint      `gorm:"not null;index:idx_activity_user_modified"`
	CourseID   string    `gorm:"size:255;not null;index:idx_activity_course_modified"`
	State      string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
	ModifiedAt time.Time `gorm:"not null;index:idx_activity_user_modified;index:idx_activity_course_modified"`
}

// TableName specifies the table name for GORM
func (StudentActivityModel) TableName() string {
	return constants.TableStudentActivities
}
