package tenant

import (
	"fmt"
	"time"

	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/id"
)

// Organization is the administrative grouping that links courses to a tenant.
// Invariants: exactly one organization per course, exactly one tenant per
// organization. An organization with tenantID 0 is not yet linked to a tenant.
type Organization struct {
	id        uint
	sid       string // Stripe-style ID: org_xxx
	name      string
	tenantID  uint
	createdAt time.Time
	updatedAt time.Time
}

// NewOrganization creates a new organization linked to a tenant.
func NewOrganization(name string, tenantID uint) (*Organization, error) {
	if name == "" {
		return nil, fmt.Errorf("organization name is required")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixOrganization, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Organization{
		sid:       sid,
		name:      name,
		tenantID:  tenantID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructOrganization reconstructs an organization entity from persistence.
func ReconstructOrganization(orgID uint, sid, name string, tenantID uint, createdAt, updatedAt time.Time) (*Organization, error) {
	if orgID == 0 {
		return nil, fmt.Errorf("organization ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("organization SID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("organization name is required")
	}

	return &Organization{
		id:        orgID,
		sid:       sid,
		name:      name,
		tenantID:  tenantID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the organization ID.
func (o *Organization) ID() uint {
	return o.id
}

// SID returns the Stripe-style ID.
func (o *Organization) SID() string {
	return o.sid
}

// Name returns the organization name.
func (o *Organization) Name() string {
	return o.name
}

// TenantID returns the owning tenant ID, or 0 when the organization is not
// linked to any tenant.
func (o *Organization) TenantID() uint {
	return o.tenantID
}

// HasTenant reports whether the organization is linked to a tenant.
func (o *Organization) HasTenant() bool {
	return o.tenantID != 0
}

// CreatedAt returns when the organization was created.
func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the organization was last updated.
func (o *Organization) UpdatedAt() time.Time {
	return o.updatedAt
}

// SetID sets the organization ID (only for persistence layer use).
func (o *Organization) SetID(orgID uint) error {
	if o.id != 0 {
		return fmt.Errorf("organization ID is already set")
	}
	if orgID == 0 {
		return fmt.Errorf("organization ID cannot be zero")
	}
	o.id = orgID
	return nil
}
