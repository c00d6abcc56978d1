package migration

import (
	"spyglass/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every table the pipeline owns or mirrors for
// development schema sync. Order respects foreign key dependencies.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TenantModel{},
		&models.OrganizationModel{},
		&models.OrganizationCourseModel{},
		&models.TenantUserModel{},
		&models.StudentActivityModel{},
		&models.CourseEnrollmentModel{},
		&models.CourseCertificateModel{},
		&models.SubsectionGradeModel{},
		&models.CourseGradeModel{},
		&models.DailyMetricModel{},
		&models.MonthlyMetricModel{},
		&models.EnrollmentDataModel{},
	}
}
