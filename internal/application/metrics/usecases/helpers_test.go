package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appgrades "spyglass/internal/application/grades"
	"spyglass/internal/domain/grades"
	"spyglass/internal/domain/tenant"
	"spyglass/internal/shared/constants"
)

func newTestTenant(t *testing.T, tenantID uint) *tenant.Tenant {
	t.Helper()
	now := time.Now().UTC()
	tn, err := tenant.ReconstructTenant(tenantID, "tn_test12345", "Test Tenant", "test.example.org", now, now)
	require.NoError(t, err)
	return tn
}

func newTestResolver(t *testing.T, tenants *mockTenantRepository, orgs *mockOrganizationRepository, memberships *mockMembershipRepository) *tenant.Resolver {
	t.Helper()
	r, err := tenant.NewResolver(constants.ModeMultitenant, "", tenants, orgs, memberships, nil, nopLogger{})
	require.NoError(t, err)
	return r
}

func newTestCollector(adapter *mockGradeAdapter) *appgrades.Collector {
	return appgrades.NewCollector(adapter, nopLogger{})
}

// gradeFor builds a single-section grade whose progress is earned/possible.
func gradeFor(userID uint, courseID string, earned, possible float64, letter string) *grades.CourseGrade {
	return &grades.CourseGrade{
		UserID:   userID,
		CourseID: courseID,
		SectionScores: []grades.SectionScore{
			{ID: "chapter-1", Earned: earned, Possible: possible},
		},
		PercentGrade: func() float64 {
			if possible <= 0 {
				return 0
			}
			return earned / possible
		}(),
		LetterGrade: letter,
	}
}
