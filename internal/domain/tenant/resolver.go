package tenant

import (
	"context"
	"fmt"
	"time"

	"spyglass/internal/shared/constants"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

// Resolver maps courses, users, and organizations to their owning tenant.
//
// In standalone mode the whole store belongs to the single configured tenant.
// In multitenant mode ownership flows course -> organization -> tenant, and
// the mapping invariants (one organization per course, one tenant per
// organization) are enforced here. An unmapped course resolves to a nil
// tenant: that is a common, expected outcome, not an error.
type Resolver struct {
	mode             string
	defaultTenantSID string
	tenants          Repository
	orgs             OrganizationRepository
	memberships      MembershipRepository
	courseKeys       CourseKeyCache // optional
	logger           logger.Interface
}

// NewResolver creates a tenant resolver. The deployment mode is immutable
// after construction. cache may be nil to disable course-key caching.
func NewResolver(
	mode string,
	defaultTenantSID string,
	tenants Repository,
	orgs OrganizationRepository,
	memberships MembershipRepository,
	cache CourseKeyCache,
	log logger.Interface,
) (*Resolver, error) {
	if mode != constants.ModeStandalone && mode != constants.ModeMultitenant {
		return nil, fmt.Errorf("invalid deployment mode: %q", mode)
	}
	if mode == constants.ModeStandalone && defaultTenantSID == "" {
		return nil, fmt.Errorf("standalone mode requires a default tenant SID")
	}

	return &Resolver{
		mode:             mode,
		defaultTenantSID: defaultTenantSID,
		tenants:          tenants,
		orgs:             orgs,
		memberships:      memberships,
		courseKeys:       cache,
		logger:           log,
	}, nil
}

// IsMultitenant reports whether the resolver operates in multitenant mode.
func (r *Resolver) IsMultitenant() bool {
	return r.mode == constants.ModeMultitenant
}

// DefaultTenant returns the single configured tenant in standalone mode.
func (r *Resolver) DefaultTenant(ctx context.Context) (*Tenant, error) {
	t, err := r.tenants.FindBySID(ctx, r.defaultTenantSID)
	if err != nil {
		return nil, fmt.Errorf("failed to load default tenant: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("default tenant %q not found", r.defaultTenantSID)
	}
	return t, nil
}

// TenantForCourse returns the tenant owning the course, or nil when the
// course is not linked to any tenant. A course mapped to more than one
// organization is an invariant violation and returns an error.
func (r *Resolver) TenantForCourse(ctx context.Context, courseID string) (*Tenant, error) {
	if !r.IsMultitenant() {
		return r.DefaultTenant(ctx)
	}

	orgs, err := r.orgs.OrganizationsForCourse(ctx, courseID, query.ReadReplica)
	if err != nil {
		return nil, fmt.Errorf("failed to look up organizations for course %q: %w", courseID, err)
	}

	switch {
	case len(orgs) == 0:
		// Not linked to any tenant yet. Expected for newly created courses.
		return nil, nil
	case len(orgs) > 1:
		inv := NewCourseOrgInvariant(courseID, len(orgs))
		r.logger.Errorw("course organization mapping invariant violated",
			"course_id", courseID,
			"organization_count", len(orgs),
		)
		return nil, inv
	}

	org := orgs[0]
	if !org.HasTenant() {
		// Organization exists but is not linked to a tenant.
		return nil, nil
	}

	t, err := r.tenants.FindByID(ctx, org.TenantID())
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant %d for course %q: %w", org.TenantID(), courseID, err)
	}
	return t, nil
}

// TenantsForUser returns every tenant the user belongs to. Staff, superusers,
// and administrative configuration group members are excluded at the
// membership repository.
func (r *Resolver) TenantsForUser(ctx context.Context, userID uint) ([]*Tenant, error) {
	if !r.IsMultitenant() {
		t, err := r.DefaultTenant(ctx)
		if err != nil {
			return nil, err
		}
		return []*Tenant{t}, nil
	}

	tenantIDs, err := r.memberships.TenantIDsForUser(ctx, userID, query.ReadReplica)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tenants for user %d: %w", userID, err)
	}

	tenants := make([]*Tenant, 0, len(tenantIDs))
	for _, tid := range tenantIDs {
		t, err := r.tenants.FindByID(ctx, tid)
		if err != nil {
			return nil, fmt.Errorf("failed to load tenant %d: %w", tid, err)
		}
		if t != nil {
			tenants = append(tenants, t)
		}
	}
	return tenants, nil
}

// CourseKeysForTenant returns the course ids owned by the tenant. In
// standalone mode every course in the store belongs to the tenant.
func (r *Resolver) CourseKeysForTenant(ctx context.Context, t *Tenant) ([]string, error) {
	if !r.IsMultitenant() {
		return r.orgs.AllCourseKeys(ctx, query.ReadReplica)
	}

	if r.courseKeys != nil {
		if keys, ok, err := r.courseKeys.Get(ctx, t.ID()); err != nil {
			// Cache trouble must not break resolution.
			r.logger.Warnw("course key cache read failed, falling back to store",
				"tenant_id", t.ID(),
				"error", err,
			)
		} else if ok {
			return keys, nil
		}
	}

	keys, err := r.orgs.CourseKeysForTenant(ctx, t.ID(), query.ReadReplica)
	if err != nil {
		return nil, fmt.Errorf("failed to load course keys for tenant %d: %w", t.ID(), err)
	}

	if r.courseKeys != nil {
		if err := r.courseKeys.Set(ctx, t.ID(), keys); err != nil {
			r.logger.Warnw("course key cache write failed",
				"tenant_id", t.ID(),
				"error", err,
			)
		}
	}
	return keys, nil
}

// MemberIDsForTenant returns every user id belonging to the tenant,
// including staff and superusers.
func (r *Resolver) MemberIDsForTenant(ctx context.Context, t *Tenant) ([]uint, error) {
	if !r.IsMultitenant() {
		return r.memberships.AllMemberIDs(ctx, query.ReadReplica)
	}
	return r.memberships.MemberIDsForTenant(ctx, t.ID(), query.ReadReplica)
}

// LearnerIDsForTenant returns the learner user ids for the tenant, excluding
// staff, superusers, and administrative configuration group members.
func (r *Resolver) LearnerIDsForTenant(ctx context.Context, t *Tenant) ([]uint, error) {
	if !r.IsMultitenant() {
		return r.memberships.AllLearnerIDs(ctx, query.ReadReplica)
	}
	return r.memberships.LearnerIDsForTenant(ctx, t.ID(), query.ReadReplica)
}

// RegisteredUserCount returns the cumulative count of tenant memberships
// created on or before asOf.
func (r *Resolver) RegisteredUserCount(ctx context.Context, t *Tenant, asOf time.Time) (int64, error) {
	if !r.IsMultitenant() {
		return r.memberships.GlobalRegisteredUserCount(ctx, asOf, query.ReadReplica)
	}
	return r.memberships.RegisteredUserCount(ctx, t.ID(), asOf, query.ReadReplica)
}

// NewUserCount returns the count of tenant memberships created within [from, to).
func (r *Resolver) NewUserCount(ctx context.Context, t *Tenant, from, to time.Time) (int64, error) {
	if !r.IsMultitenant() {
		return r.memberships.GlobalNewUserCount(ctx, from, to, query.ReadReplica)
	}
	return r.memberships.NewUserCount(ctx, t.ID(), from, to, query.ReadReplica)
}
