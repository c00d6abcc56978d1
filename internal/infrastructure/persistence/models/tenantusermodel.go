package models

import (
	"time"

	"spyglass/internal/shared/constants"
)

// TenantUserModel is a tenant membership row. CreatedAt drives the
// registered_users and new_users counters.
type TenantUserModel struct {
	ID        uint      `gorm:"primarykey"`
	TenantID  uint      `gorm:"not null;uniqueIndex:idx_tenant_user"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_tenant_user;index:idx_membership_user"`
	CreatedAt time.Time `gorm:"not null;index"`

	Tenant *TenantModel `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	User   *UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (TenantUserModel) TableName() string {
	return constants.TableTenantUsers
}
