package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// OrganizationCourseModel links a course to its owning organization. The
// pipeline expects at most one organization per course; the unique index on
// (organization_id, course_id) stops duplicates of the same link but a
// second organization claiming the course is a data fault the resolver
// reports as an invariant violation.
type OrganizationCourseModel struct {
	ID             uint   `gorm:"primarykey"`
	OrganizationID uint   `gorm:"not null;uniqueIndex:idx_org_course"`
	CourseID       string `gorm:"size:255;not null;uniqueIndex:idx_org_course;index:idx_course"`
	CreatedAt      time.Time

	Organization *OrganizationModel `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (OrganizationCourseModel) TableName() string {
	return constants.TableOrganizationCourses
}
