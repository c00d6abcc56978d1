package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"spyglass/internal/domain/grades"
	"spyglass/internal/domain/learning"
	"spyglass/internal/domain/metrics"
)

func TestBackfillEnrollmentData_RefreshesSnapshots(t *testing.T) {
	const courseID = "course-1"
	enrolledAt := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	orgs := new(mockOrganizationRepository)
	orgs.On("CourseKeysForTenant", mock.Anything, uint(1), mock.Anything).Return([]string{courseID}, nil)

	enrollments := new(mockEnrollmentRepository)
	enrollments.On("ForCourses", mock.Anything, []string{courseID}, mock.Anything, mock.Anything).Return([]*learning.EnrollmentRecord{
		{ID: 1, UserID: 1, CourseID: courseID, EnrolledAt: enrolledAt, IsActive: true},
	}, nil)

	adapter := new(mockGradeAdapter)
	adapter.On("CourseGrade", mock.Anything, uint(1), courseID).Return(gradeFor(1, courseID, 3, 4, "B"), nil)

	dataRepo := new(mockEnrollmentDataRepository)
	dataRepo.On("FindByKey", mock.Anything, uint(1), uint(1), courseID).Return(nil, nil)
	dataRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(e *metrics.EnrollmentData) bool {
		return e.UserID() == 1 && e.ProgressPercent() == 0.75 && e.LetterGrade() == "B" && !e.IsComplete()
	})).Return(nil)

	monthlyRepo := new(mockMonthlyMetricRepository)
	monthlyRepo.On("FindByKey", mock.Anything, uint(1), metrics.ScopeLearner, courseID, uint(1), mock.Anything).Return(nil, nil)
	monthlyRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(m *metrics.MonthlyMetric) bool {
		return m.Scope() == metrics.ScopeLearner && m.UserID() == 1 &&
			m.PercentGrade() == 0.75 && m.LetterGrade() == "B" && !m.IsComplete()
	})).Return(nil)

	uc := NewBackfillEnrollmentDataUseCase(
		newTestResolver(t, new(mockTenantRepository), orgs, new(mockMembershipRepository)),
		enrollments,
		newTestCollector(adapter),
		dataRepo, monthlyRepo, 500,
		nopLogger{},
	)

	results, failures, err := uc.Execute(context.Background(), newTestTenant(t, 1))
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, results, 1)
	assert.True(t, results[0].Created)

	dataRepo.AssertExpectations(t)
	monthlyRepo.AssertExpectations(t)
}

func TestBackfillEnrollmentData_OneFailureDoesNotAbortBatch(t *testing.T) {
	const courseID = "course-1"
	enrolledAt := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	orgs := new(mockOrganizationRepository)
	orgs.On("CourseKeysForTenant", mock.Anything, uint(1), mock.Anything).Return([]string{courseID}, nil)

	enrollments := new(mockEnrollmentRepository)
	enrollments.On("ForCourses", mock.Anything, []string{courseID}, mock.Anything, mock.Anything).Return([]*learning.EnrollmentRecord{
		{ID: 1, UserID: 1, CourseID: courseID, EnrolledAt: enrolledAt, IsActive: true},
		{ID: 2, UserID: 2, CourseID: courseID, EnrolledAt: enrolledAt, IsActive: true},
	}, nil)

	adapter := new(mockGradeAdapter)
	adapter.On("CourseGrade", mock.Anything, mock.Anything, courseID).Return(nil, grades.ErrGradeNotFound)

	dataRepo := new(mockEnrollmentDataRepository)
	dataRepo.On("FindByKey", mock.Anything, uint(1), mock.Anything, courseID).Return(nil, nil)
	dataRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(e *metrics.EnrollmentData) bool {
		return e.UserID() == 1
	})).Return(errors.New("write timeout"))
	dataRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(e *metrics.EnrollmentData) bool {
		return e.UserID() == 2
	})).Return(nil)

	monthlyRepo := new(mockMonthlyMetricRepository)
	monthlyRepo.On("FindByKey", mock.Anything, uint(1), metrics.ScopeLearner, courseID, uint(2), mock.Anything).Return(nil, nil)
	monthlyRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*metrics.MonthlyMetric")).Return(nil)

	uc := NewBackfillEnrollmentDataUseCase(
		newTestResolver(t, new(mockTenantRepository), orgs, new(mockMembershipRepository)),
		enrollments,
		newTestCollector(adapter),
		dataRepo, monthlyRepo, 500,
		nopLogger{},
	)

	results, failures, err := uc.Execute(context.Background(), newTestTenant(t, 1))
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, uint(2), results[0].Record.UserID())

	require.Len(t, failures, 1)
	assert.Equal(t, uint(1), failures[0].UserID)
	assert.Equal(t, courseID, failures[0].CourseID)
	assert.ErrorContains(t, failures[0], "write timeout")
}

func TestBackfillEnrollmentData_GradeNotFoundFallsBackToZeroProgress(t *testing.T) {
	const courseID = "course-1"
	enrolledAt := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	orgs := new(mockOrganizationRepository)
	orgs.On("CourseKeysForTenant", mock.Anything, uint(1), mock.Anything).Return([]string{courseID}, nil)

	enrollments := new(mockEnrollmentRepository)
	enrollments.On("ForCourses", mock.Anything, []string{courseID}, mock.Anything, mock.Anything).Return([]*learning.EnrollmentRecord{
		{ID: 1, UserID: 7, CourseID: courseID, EnrolledAt: enrolledAt, IsActive: true},
	}, nil)

	adapter := new(mockGradeAdapter)
	adapter.On("CourseGrade", mock.Anything, uint(7), courseID).Return(nil, grades.ErrGradeNotFound)

	dataRepo := new(mockEnrollmentDataRepository)
	dataRepo.On("FindByKey", mock.Anything, uint(1), uint(7), courseID).Return(nil, nil)
	dataRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(e *metrics.EnrollmentData) bool {
		return e.ProgressPercent() == 0 && e.LetterGrade() == "" && !e.IsComplete()
	})).Return(nil)

	monthlyRepo := new(mockMonthlyMetricRepository)
	monthlyRepo.On("FindByKey", mock.Anything, uint(1), metrics.ScopeLearner, courseID, uint(7), mock.Anything).Return(nil, nil)
	monthlyRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*metrics.MonthlyMetric")).Return(nil)

	uc := NewBackfillEnrollmentDataUseCase(
		newTestResolver(t, new(mockTenantRepository), orgs, new(mockMembershipRepository)),
		enrollments,
		newTestCollector(adapter),
		dataRepo, monthlyRepo, 500,
		nopLogger{},
	)

	results, failures, err := uc.Execute(context.Background(), newTestTenant(t, 1))
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, results, 1)
	dataRepo.AssertExpectations(t)
}
