package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// TenantModel represents the database persistence model for tenants
type TenantModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"size:32;not null;uniqueIndex"` // Stripe-style ID: tn_xxx
	Name      string `gorm:"size:255;not null"`
	Domain    string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (TenantModel) TableName() string {
	return constants.TableTenants
}
