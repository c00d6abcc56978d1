package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"spyglass/internal/domain/grades"
	"spyglass/internal/domain/learning"
	"spyglass/internal/domain/metrics"
	"spyglass/internal/domain/tenant"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (nopLogger) Fatal(msg string, args ...any)                   {}
func (n nopLogger) With(args ...any) logger.Interface             { return n }
func (n nopLogger) Named(name string) logger.Interface            { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

type mockTenantRepository struct {
	mock.Mock
}

func (m *mockTenantRepository) FindByID(ctx context.Context, tenantID uint) (*tenant.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepository) FindBySID(ctx context.Context, sid string) (*tenant.Tenant, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenant.Tenant), args.Error(1)
}

type mockOrganizationRepository struct {
	mock.Mock
}

func (m *mockOrganizationRepository) OrganizationsForCourse(ctx context.Context, courseID string, pref query.ReadPreference) ([]*tenant.Organization, error) {
	args := m.Called(ctx, courseID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenant.Organization), args.Error(1)
}

func (m *mockOrganizationRepository) CourseKeysForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]string, error) {
	args := m.Called(ctx, tenantID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockOrganizationRepository) AllCourseKeys(ctx context.Context, pref query.ReadPreference) ([]string, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) TenantIDsForUser(ctx context.Context, userID uint, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, userID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepository) MemberIDsForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, tenantID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepository) AllMemberIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepository) LearnerIDsForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, tenantID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepository) AllLearnerIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockMembershipRepository) RegisteredUserCount(ctx context.Context, tenantID uint, asOf time.Time, pref query.ReadPreference) (int64, error) {
	args := m.Called(ctx, tenantID, asOf, pref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMembershipRepository) NewUserCount(ctx context.Context, tenantID uint, from, to time.Time, pref query.ReadPreference) (int64, error) {
	args := m.Called(ctx, tenantID, from, to, pref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMembershipRepository) GlobalRegisteredUserCount(ctx context.Context, asOf time.Time, pref query.ReadPreference) (int64, error) {
	args := m.Called(ctx, asOf, pref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMembershipRepository) GlobalNewUserCount(ctx context.Context, from, to time.Time, pref query.ReadPreference) (int64, error) {
	args := m.Called(ctx, from, to, pref)
	return args.Get(0).(int64), args.Error(1)
}

type mockActivityRepository struct {
	mock.Mock
}

func (m *mockActivityRepository) ActiveUserIDs(ctx context.Context, courseIDs []string, from, to time.Time, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, courseIDs, from, to, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockActivityRepository) ActiveUserIDsForCourse(ctx context.Context, courseID string, from, to time.Time, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, courseID, from, to, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockActivityRepository) EarliestCreatedAt(ctx context.Context, courseIDs []string, pref query.ReadPreference) (*time.Time, error) {
	args := m.Called(ctx, courseIDs, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *mockActivityRepository) DistinctUserIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockActivityRepository) LatestForUser(ctx context.Context, userID uint, pref query.ReadPreference) (*learning.ActivityRecord, error) {
	args := m.Called(ctx, userID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.ActivityRecord), args.Error(1)
}

type mockEnrollmentRepository struct {
	mock.Mock
}

func (m *mockEnrollmentRepository) ForCourses(ctx context.Context, courseIDs []string, page query.PageFilter, pref query.ReadPreference) ([]*learning.EnrollmentRecord, error) {
	args := m.Called(ctx, courseIDs, page, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*learning.EnrollmentRecord), args.Error(1)
}

func (m *mockEnrollmentRepository) ForCourse(ctx context.Context, courseID string, pref query.ReadPreference) ([]*learning.EnrollmentRecord, error) {
	args := m.Called(ctx, courseID, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*learning.EnrollmentRecord), args.Error(1)
}

func (m *mockEnrollmentRepository) CountForCourseAsOf(ctx context.Context, courseID string, asOf time.Time, pref query.ReadPreference) (int64, error) {
	args := m.Called(ctx, courseID, asOf, pref)
	return args.Get(0).(int64), args.Error(1)
}

type mockCertificateRepository struct {
	mock.Mock
}

func (m *mockCertificateRepository) UserIDsForCourseAsOf(ctx context.Context, courseID string, asOf time.Time, pref query.ReadPreference) ([]uint, error) {
	args := m.Called(ctx, courseID, asOf, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

type mockUserProfileRepository struct {
	mock.Mock
}

func (m *mockUserProfileRepository) SetLastCourseActivityAt(ctx context.Context, userID uint, ts time.Time) error {
	args := m.Called(ctx, userID, ts)
	return args.Error(0)
}

type mockGradeAdapter struct {
	mock.Mock
}

func (m *mockGradeAdapter) CourseGrade(ctx context.Context, userID uint, courseID string) (*grades.CourseGrade, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grades.CourseGrade), args.Error(1)
}

type mockDailyMetricRepository struct {
	mock.Mock
}

func (m *mockDailyMetricRepository) FindByKey(ctx context.Context, tenantID uint, scope metrics.Scope, courseID string, dateFor time.Time) (*metrics.DailyMetric, error) {
	args := m.Called(ctx, tenantID, scope, courseID, dateFor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.DailyMetric), args.Error(1)
}

func (m *mockDailyMetricRepository) Upsert(ctx context.Context, metric *metrics.DailyMetric) error {
	args := m.Called(ctx, metric)
	return args.Error(0)
}

type mockMonthlyMetricRepository struct {
	mock.Mock
}

func (m *mockMonthlyMetricRepository) FindByKey(ctx context.Context, tenantID uint, scope metrics.Scope, courseID string, userID uint, monthFor time.Time) (*metrics.MonthlyMetric, error) {
	args := m.Called(ctx, tenantID, scope, courseID, userID, monthFor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.MonthlyMetric), args.Error(1)
}

func (m *mockMonthlyMetricRepository) FindLatestForLearner(ctx context.Context, tenantID, userID uint, courseID string) (*metrics.MonthlyMetric, error) {
	args := m.Called(ctx, tenantID, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.MonthlyMetric), args.Error(1)
}

func (m *mockMonthlyMetricRepository) Upsert(ctx context.Context, metric *metrics.MonthlyMetric) error {
	args := m.Called(ctx, metric)
	return args.Error(0)
}

type mockEnrollmentDataRepository struct {
	mock.Mock
}

func (m *mockEnrollmentDataRepository) FindByKey(ctx context.Context, tenantID, userID uint, courseID string) (*metrics.EnrollmentData, error) {
	args := m.Called(ctx, tenantID, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.EnrollmentData), args.Error(1)
}

func (m *mockEnrollmentDataRepository) Upsert(ctx context.Context, e *metrics.EnrollmentData) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
