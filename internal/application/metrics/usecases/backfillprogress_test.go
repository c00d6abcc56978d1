package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"spyglass/internal/domain/learning"
	"spyglass/internal/domain/metrics"
)

func learnerMonthly(t *testing.T, userID uint, courseID string) *metrics.MonthlyMetric {
	t.Helper()
	month := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	m, err := metrics.ReconstructMonthlyMetric(
		userID, "mm_learner1234", 1, metrics.ScopeLearner, courseID, userID, month,
		metrics.Counters{}, 0, 0, "", false, time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)
	return m
}

func TestBackfillLearnerProgress_ContainsFailuresAtBothLevels(t *testing.T) {
	enrolledAt := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	orgs := new(mockOrganizationRepository)
	orgs.On("CourseKeysForTenant", mock.Anything, uint(1), mock.Anything).Return([]string{"course-bad", "course-good"}, nil)

	enrollments := new(mockEnrollmentRepository)
	// The first course cannot even be loaded; the second must still run.
	enrollments.On("ForCourse", mock.Anything, "course-bad", mock.Anything).Return(nil, errors.New("table gone"))
	enrollments.On("ForCourse", mock.Anything, "course-good", mock.Anything).Return([]*learning.EnrollmentRecord{
		{ID: 1, UserID: 1, CourseID: "course-good", EnrolledAt: enrolledAt, IsActive: true},
		{ID: 2, UserID: 2, CourseID: "course-good", EnrolledAt: enrolledAt, IsActive: true},
		{ID: 3, UserID: 3, CourseID: "course-good", EnrolledAt: enrolledAt, IsActive: true},
	}, nil)

	monthlyRepo := new(mockMonthlyMetricRepository)
	monthlyRepo.On("FindLatestForLearner", mock.Anything, uint(1), uint(1), "course-good").
		Return(learnerMonthly(t, 1, "course-good"), nil)
	// User 2 has no monthly record yet and is skipped, not failed.
	monthlyRepo.On("FindLatestForLearner", mock.Anything, uint(1), uint(2), "course-good").Return(nil, nil)
	monthlyRepo.On("FindLatestForLearner", mock.Anything, uint(1), uint(3), "course-good").
		Return(learnerMonthly(t, 3, "course-good"), nil)
	monthlyRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(m *metrics.MonthlyMetric) bool {
		return m.UserID() == 1 && m.PercentGrade() == 0.9
	})).Return(nil)

	adapter := new(mockGradeAdapter)
	adapter.On("CourseGrade", mock.Anything, uint(1), "course-good").Return(gradeFor(1, "course-good", 9, 10, "A"), nil)
	adapter.On("CourseGrade", mock.Anything, uint(3), "course-good").Return(nil, errors.New("grading service 502"))

	uc := NewBackfillLearnerProgressUseCase(
		newTestResolver(t, new(mockTenantRepository), orgs, new(mockMembershipRepository)),
		enrollments,
		newTestCollector(adapter),
		monthlyRepo,
		nopLogger{},
	)

	updated, skipped, failures, err := uc.Execute(context.Background(), newTestTenant(t, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, skipped)
	require.Len(t, failures, 2)

	// Course-level failure carries no user id.
	assert.Equal(t, uint(0), failures[0].UserID)
	assert.Equal(t, "course-bad", failures[0].CourseID)

	assert.Equal(t, uint(3), failures[1].UserID)
	assert.Equal(t, "course-good", failures[1].CourseID)

	monthlyRepo.AssertExpectations(t)
}

func TestBackfillLearnerProgress_NothingToUpdate(t *testing.T) {
	orgs := new(mockOrganizationRepository)
	orgs.On("CourseKeysForTenant", mock.Anything, uint(1), mock.Anything).Return([]string{}, nil)

	uc := NewBackfillLearnerProgressUseCase(
		newTestResolver(t, new(mockTenantRepository), orgs, new(mockMembershipRepository)),
		new(mockEnrollmentRepository),
		newTestCollector(new(mockGradeAdapter)),
		new(mockMonthlyMetricRepository),
		nopLogger{},
	)

	updated, skipped, failures, err := uc.Execute(context.Background(), newTestTenant(t, 1))
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Zero(t, skipped)
	assert.Empty(t, failures)
}
