package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// OrganizationModel represents the database persistence model for
// organizations. TenantID is zero until the organization is linked.
type OrganizationModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"size:32;not null;uniqueIndex"` // Stripe-style ID: org_xxx
	Name      string `gorm:"size:255;not null"`
	TenantID  uint   `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Tenant *TenantModel `gorm:"foreignKey:TenantID"`
}

// TableName specifies the table name for GORM
func (OrganizationModel) TableName() string {
	return constants.TableOrganizations
}
