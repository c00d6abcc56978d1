package tenant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"spyglass/internal/shared/constants"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                    {}
func (nopLogger) Info(msg string, args ...any)                     {}
func (nopLogger) Warn(msg string, args ...any)                     {}
func (nopLogger) Error(msg string, args ...any)                    {}
func (nopLogger) Fatal(msg string, args ...any)                    {}
func (n nopLogger) With(args ...any) logger.Interface              { return n }
func (n nopLogger) Named(name string) logger.Interface             { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{})  {}

type mockTenantRepo struct {
	mock.Mock
}

func (m *mockTenantRepo) FindByID(ctx context.Context, tenantID uint) (*Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tenant), args.Error(1)
}

func (m *mockTenantRepo) FindBySID(ctx context.Context, sid string) (*Tenant, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tenant), args.Error(1)
}

func (m *mockTenantRepo) List(ctx context.Context) ([]*Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Tenant), args.Error(1)
}

type mockOrgRepo struct {
	mock.Mock
}

func (m *mockOrgRepo) OrganizationsForCourse(ctx context.Context, courseID string, pref query.ReadPreference) ([]*Organization, error) {
	args := m.Called(ctx, courseID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Organization), args.Error(1)
}

func (m *mockOrgRepo) CourseKeysForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]string, error) {
	args := m.Called(ctx, tenantID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockOrgRepo) AllCourseKeys(ctx context.Context, pref query.ReadPreference) ([]string, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockMembershipRepo struct {
	mock.Mock
}

func (m *mockMembershipRepo) TenantIDsForUser(ctx context.Context, userID uint, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, userID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepo) MemberIDsForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, tenantID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepo) AllMemberIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepo) LearnerIDsForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, tenantID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepo) AllLearnerIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepo) RegisteredUserCount(ctx context.Context, tenantID uint, asOf time.Time, pref query.ReadPreference) (int64, error) {
	args := m.Called(ctx, tenantID, asOf, pref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMembershipRepo) NewUserCount(ctx context.Context, tenantID uint, from, to time.Time, pref query.ReadPreference) (int64, error) {
	args := m.Called(ctx, tenantID, from, to, pref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMembershipRepo) GlobalRegisteredUserCount(ctx context.Context, asOf time.Time, pref query.ReadPreference) (int64, error) {
	args := m.Called(ctx, asOf, pref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMembershipRepo) GlobalNewUserCount(ctx context.Context, from, to time.Time, pref query.ReadPreference) (int64, error) {
	args := m.Called(ctx, from, to, pref)
	return args.Get(0).(int64), args.Error(1)
}

type mockCourseKeyCache struct {
	mock.Mock
}

func (m *mockCourseKeyCache) Get(ctx context.Context, tenantID uint) ([]string, bool, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}

func (m *mockCourseKeyCache) Set(ctx context.Context, tenantID uint, courseKeys []string) error {
	args := m.Called(ctx, tenantID, courseKeys)
	return args.Error(0)
}

func (m *mockCourseKeyCache) Invalidate(ctx context.Context, tenantID uint) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func testTenant(t *testing.T, tenantID uint) *Tenant {
	t.Helper()
	now := time.Now().UTC()
	tn, err := ReconstructTenant(tenantID, "tn_test12345", "Test Tenant", "test.example.org", now, now)
	require.NoError(t, err)
	return tn
}

func newTestResolver(t *testing.T, mode string, tenants Repository, orgs OrganizationRepository, memberships MembershipRepository, cache CourseKeyCache) *Resolver {
	t.Helper()
	r, err := NewResolver(mode, "tn_test12345", tenants, orgs, memberships, cache, nopLogger{})
	require.NoError(t, err)
	return r
}

func TestNewResolver_Validation(t *testing.T) {
	_, err := NewResolver("invalid", "tn_x", nil, nil, nil, nil, nopLogger{})
	assert.Error(t, err)

	_, err = NewResolver(constants.ModeStandalone, "", nil, nil, nil, nil, nopLogger{})
	assert.Error(t, err)

	_, err = NewResolver(constants.ModeMultitenant, "", nil, nil, nil, nil, nopLogger{})
	assert.NoError(t, err)
}

func TestResolver_DefaultTenant(t *testing.T) {
	tenants := new(mockTenantRepo)
	tn := testTenant(t, 1)
	tenants.On("FindBySID", mock.Anything, "tn_test12345").Return(tn, nil)

	r := newTestResolver(t, constants.ModeStandalone, tenants, nil, nil, nil)

	got, err := r.DefaultTenant(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint(1), got.ID())
}

func TestResolver_DefaultTenant_NotFound(t *testing.T) {
	tenants := new(mockTenantRepo)
	tenants.On("FindBySID", mock.Anything, "tn_test12345").Return(nil, nil)

	r := newTestResolver(t, constants.ModeStandalone, tenants, nil, nil, nil)

	_, err := r.DefaultTenant(context.Background())
	assert.Error(t, err)
}

func TestResolver_TenantForCourse_Standalone(t *testing.T) {
	tenants := new(mockTenantRepo)
	tn := testTenant(t, 1)
	tenants.On("FindBySID", mock.Anything, "tn_test12345").Return(tn, nil)

	r := newTestResolver(t, constants.ModeStandalone, tenants, nil, nil, nil)

	got, err := r.TenantForCourse(context.Background(), "course-1")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), got.ID())
}

func TestResolver_TenantForCourse_Multitenant(t *testing.T) {
	now := time.Now().UTC()
	linkedOrg, err := ReconstructOrganization(10, "org_linked12345", "Linked Org", 2, now, now)
	require.NoError(t, err)
	unlinkedOrg, err := ReconstructOrganization(11, "org_orphan12345", "Orphan Org", 0, now, now)
	require.NoError(t, err)

	t.Run("unmapped course resolves to nil tenant", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		orgs.On("OrganizationsForCourse", mock.Anything, "course-x", query.ReadReplica).Return([]*Organization{}, nil)

		r := newTestResolver(t, constants.ModeMultitenant, nil, orgs, nil, nil)

		got, err := r.TenantForCourse(context.Background(), "course-x")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("course mapped to multiple orgs violates invariant", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		orgs.On("OrganizationsForCourse", mock.Anything, "course-x", query.ReadReplica).
			Return([]*Organization{linkedOrg, unlinkedOrg}, nil)

		r := newTestResolver(t, constants.ModeMultitenant, nil, orgs, nil, nil)

		_, err := r.TenantForCourse(context.Background(), "course-x")
		assert.Error(t, err)
		assert.True(t, IsInvariantViolation(err))
	})

	t.Run("org without tenant resolves to nil tenant", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		orgs.On("OrganizationsForCourse", mock.Anything, "course-x", query.ReadReplica).
			Return([]*Organization{unlinkedOrg}, nil)

		r := newTestResolver(t, constants.ModeMultitenant, nil, orgs, nil, nil)

		got, err := r.TenantForCourse(context.Background(), "course-x")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("linked org resolves to its tenant", func(t *testing.T) {
		orgs := new(mockOrgRepo)
		orgs.On("OrganizationsForCourse", mock.Anything, "course-x", query.ReadReplica).
			Return([]*Organization{linkedOrg}, nil)
		tenants := new(mockTenantRepo)
		tn := testTenant(t, 2)
		tenants.On("FindByID", mock.Anything, uint(2)).Return(tn, nil)

		r := newTestResolver(t, constants.ModeMultitenant, tenants, orgs, nil, nil)

		got, err := r.TenantForCourse(context.Background(), "course-x")
		assert.NoError(t, err)
		assert.Equal(t, uint(2), got.ID())
	})
}

func TestResolver_TenantsForUser_Multitenant(t *testing.T) {
	memberships := new(mockMembershipRepo)
	memberships.On("TenantIDsForUser", mock.Anything, uint(42), query.ReadReplica).Return([]uint{1, 2}, nil)

	tenants := new(mockTenantRepo)
	tenants.On("FindByID", mock.Anything, uint(1)).Return(testTenant(t, 1), nil)
	tenants.On("FindByID", mock.Anything, uint(2)).Return(testTenant(t, 2), nil)

	r := newTestResolver(t, constants.ModeMultitenant, tenants, nil, memberships, nil)

	got, err := r.TenantsForUser(context.Background(), 42)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestResolver_CourseKeysForTenant_CacheHit(t *testing.T) {
	cache := new(mockCourseKeyCache)
	cache.On("Get", mock.Anything, uint(1)).Return([]string{"course-1", "course-2"}, true, nil)

	orgs := new(mockOrgRepo)

	r := newTestResolver(t, constants.ModeMultitenant, nil, orgs, nil, cache)

	keys, err := r.CourseKeysForTenant(context.Background(), testTenant(t, 1))
	assert.NoError(t, err)
	assert.Equal(t, []string{"course-1", "course-2"}, keys)
	orgs.AssertNotCalled(t, "CourseKeysForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_CourseKeysForTenant_CacheMissFillsCache(t *testing.T) {
	cache := new(mockCourseKeyCache)
	cache.On("Get", mock.Anything, uint(1)).Return(nil, false, nil)
	cache.On("Set", mock.Anything, uint(1), []string{"course-1"}).Return(nil)

	orgs := new(mockOrgRepo)
	orgs.On("CourseKeysForTenant", mock.Anything, uint(1), query.ReadReplica).Return([]string{"course-1"}, nil)

	r := newTestResolver(t, constants.ModeMultitenant, nil, orgs, nil, cache)

	keys, err := r.CourseKeysForTenant(context.Background(), testTenant(t, 1))
	assert.NoError(t, err)
	assert.Equal(t, []string{"course-1"}, keys)
	cache.AssertExpectations(t)
}

func TestResolver_CourseKeysForTenant_CacheErrorFallsBack(t *testing.T) {
	cache := new(mockCourseKeyCache)
	cache.On("Get", mock.Anything, uint(1)).Return(nil, false, errors.New("redis down"))

	orgs := new(mockOrgRepo)
	orgs.On("CourseKeysForTenant", mock.Anything, uint(1), query.ReadReplica).Return([]string{"course-1"}, nil)

	r := newTestResolver(t, constants.ModeMultitenant, nil, orgs, nil, cache)

	keys, err := r.CourseKeysForTenant(context.Background(), testTenant(t, 1))
	assert.NoError(t, err)
	assert.Equal(t, []string{"course-1"}, keys)
}

func TestResolver_CourseKeysForTenant_Standalone(t *testing.T) {
	orgs := new(mockOrgRepo)
	orgs.On("AllCourseKeys", mock.Anything, query.ReadReplica).Return([]string{"course-1", "course-2", "course-3"}, nil)

	tenants := new(mockTenantRepo)
	r := newTestResolver(t, constants.ModeStandalone, tenants, orgs, nil, nil)

	keys, err := r.CourseKeysForTenant(context.Background(), testTenant(t, 1))
	assert.NoError(t, err)
	assert.Len(t, keys, 3)
}

func TestResolver_UserCounts(t *testing.T) {
	asOf := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("standalone counts over the whole store", func(t *testing.T) {
		memberships := new(mockMembershipRepo)
		memberships.On("GlobalRegisteredUserCount", mock.Anything, asOf, query.ReadReplica).Return(int64(120), nil)
		memberships.On("GlobalNewUserCount", mock.Anything, from, asOf, query.ReadReplica).Return(int64(7), nil)

		tenants := new(mockTenantRepo)
		r := newTestResolver(t, constants.ModeStandalone, tenants, nil, memberships, nil)
		tn := testTenant(t, 1)

		registered, err := r.RegisteredUserCount(context.Background(), tn, asOf)
		assert.NoError(t, err)
		assert.Equal(t, int64(120), registered)

		newUsers, err := r.NewUserCount(context.Background(), tn, from, asOf)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), newUsers)
	})

	t.Run("multitenant counts over memberships", func(t *testing.T) {
		memberships := new(mockMembershipRepo)
		memberships.On("RegisteredUserCount", mock.Anything, uint(1), asOf, query.ReadReplica).Return(int64(30), nil)

		r := newTestResolver(t, constants.ModeMultitenant, nil, nil, memberships, nil)

		registered, err := r.RegisteredUserCount(context.Background(), testTenant(t, 1), asOf)
		assert.NoError(t, err)
		assert.Equal(t, int64(30), registered)
	})
}
