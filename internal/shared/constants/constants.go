package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Deployment modes
	ModeStandalone  = "standalone"
	ModeMultitenant = "multitenant"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Database table names - learning platform sources (read-only)
	TableUsers              = "users"
	TableStudentActivities  = "student_activities"
	TableCourseEnrollments  = "course_enrollments"
	TableCourseCertificates = "course_certificates"
	TableSubsectionGrades   = "subsection_grades"
	TableCourseGrades       = "course_grades"

	// Database table names - tenancy mapping
	TableTenants             = "tenants"
	TableOrganizations       = "organizations"
	TableOrganizationCourses = "organization_courses"
	TableTenantUsers         = "tenant_users"

	// Database table names - pipeline outputs
	TableDailyMetrics   = "daily_metrics"
	TableMonthlyMetrics = "monthly_metrics"
	TableEnrollmentData = "enrollment_data"
)
