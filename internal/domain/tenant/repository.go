package tenant

import (
	"context"
	"time"

	"spyglass/internal/shared/query"
)

// Repository provides access to tenant records.
type Repository interface {
	// FindByID retrieves a tenant by its numeric ID. Returns (nil, nil) when absent.
	FindByID(ctx context.Context, tenantID uint) (*Tenant, error)

	// FindBySID retrieves a tenant by its Stripe-style ID. Returns (nil, nil) when absent.
	FindBySID(ctx context.Context, sid string) (*Tenant, error)

	// List returns all tenants.
	List(ctx context.Context) ([]*Tenant, error)
}

// OrganizationRepository provides access to the organization/course mapping layer.
type OrganizationRepository interface {
	// OrganizationsForCourse returns every organization mapped to the course.
	// The one-organization-per-course invariant is enforced by the resolver,
	// not here, so violations can be surfaced with full context.
	OrganizationsForCourse(ctx context.Context, courseID string, pref query.ReadPreference) ([]*Organization, error)

	// CourseKeysForTenant returns the course ids owned by the tenant through
	// its organizations.
	CourseKeysForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]string, error)

	// AllCourseKeys returns every course id in the store. Used in standalone
	// mode where the single tenant owns everything.
	AllCourseKeys(ctx context.Context, pref query.ReadPreference) ([]string, error)
}

// MembershipRepository provides access to user/tenant memberships.
// Learner queries exclude staff, superusers, and members of the
// administrative configuration group.
type MembershipRepository interface {
	// TenantIDsForUser returns the ids of every tenant the user belongs to.
	TenantIDsForUser(ctx context.Context, userID uint, pref query.ReadPreference) ([]uint, error)

	// MemberIDsForTenant returns every user id belonging to the tenant,
	// including staff and superusers.
	MemberIDsForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]uint, error)

	// AllMemberIDs returns every user id in the store (standalone mode).
	AllMemberIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error)

	// LearnerIDsForTenant returns the learner user ids for a tenant.
	LearnerIDsForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]uint, error)

	// AllLearnerIDs returns every learner user id in the store (standalone mode).
	AllLearnerIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error)

	// RegisteredUserCount returns the cumulative count of tenant memberships
	// created on or before asOf.
	RegisteredUserCount(ctx context.Context, tenantID uint, asOf time.Time, pref query.ReadPreference) (int64, error)

	// NewUserCount returns the count of tenant memberships created within
	// [from, to).
	NewUserCount(ctx context.Context, tenantID uint, from, to time.Time, pref query.ReadPreference) (int64, error)

	// GlobalRegisteredUserCount and GlobalNewUserCount are the standalone-mode
	// equivalents computed over user registration dates.
	GlobalRegisteredUserCount(ctx context.Context, asOf time.Time, pref query.ReadPreference) (int64, error)
	GlobalNewUserCount(ctx context.Context, from, to time.Time, pref query.ReadPreference) (int64, error)
}

// CourseKeyCache caches resolved tenant course-key sets. Resolution sits on
// the hot path of every aggregation unit, so a bounded-staleness cache in
// front of the mapping tables pays for itself during backfill.
type CourseKeyCache interface {
	Get(ctx context.Context, tenantID uint) ([]string, bool, error)
	Set(ctx context.Context, tenantID uint, courseKeys []string) error
	Invalidate(ctx context.Context, tenantID uint) error
}
