package tenant

import (
	"fmt"
	"time"

	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/id"
)

// Tenant represents an isolated customer deployment boundary owning courses
// and users. All metric records are scoped to exactly one tenant.
type Tenant struct {
	id        uint
	sid       string // Stripe-style ID: tn_xxx
	name      string
	domain    string
	createdAt time.Time
	updatedAt time.Time
}

// NewTenant creates a new tenant.
func NewTenant(name, domain string) (*Tenant, error) {
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}
	if domain == "" {
		return nil, fmt.Errorf("tenant domain is required")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixTenant, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Tenant{
		sid:       sid,
		name:      name,
		domain:    domain,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructTenant reconstructs a tenant entity from persistence.
func ReconstructTenant(tenantID uint, sid, name, domain string, createdAt, updatedAt time.Time) (*Tenant, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("tenant SID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}

	return &Tenant{
		id:        tenantID,
		sid:       sid,
		name:      name,
		domain:    domain,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the tenant ID.
func (t *Tenant) ID() uint {
	return t.id
}

// SID returns the Stripe-style ID.
func (t *Tenant) SID() string {
	return t.sid
}

// Name returns the tenant name.
func (t *Tenant) Name() string {
	return t.name
}

// Domain returns the tenant's domain.
func (t *Tenant) Domain() string {
	return t.domain
}

// CreatedAt returns when the tenant was created.
func (t *Tenant) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns when the tenant was last updated.
func (t *Tenant) UpdatedAt() time.Time {
	return t.updatedAt
}

// SetID sets the tenant ID (only for persistence layer use).
func (t *Tenant) SetID(tenantID uint) error {
	if t.id != 0 {
		return fmt.Errorf("tenant ID is already set")
	}
	if tenantID == 0 {
		return fmt.Errorf("tenant ID cannot be zero")
	}
	t.id = tenantID
	return nil
}
