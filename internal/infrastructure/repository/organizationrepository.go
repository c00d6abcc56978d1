package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"spyglass/internal/domain/tenant"
	"spyglass/internal/infrastructure/persistence/mappers"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/constants"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

// OrganizationRepositoryImpl implements the tenant.OrganizationRepository interface
type OrganizationRepositoryImpl struct {
	db     dbSet
	mapper mappers.OrganizationMapper
	logger logger.Interface
}

// NewOrganizationRepository creates a new organization repository instance
func NewOrganizationRepository(primary, replica *gorm.DB, logger logger.Interface) tenant.OrganizationRepository {
	return &OrganizationRepositoryImpl{
		db:     newDBSet(primary, replica),
		mapper: mappers.NewOrganizationMapper(),
		logger: logger,
	}
}

// OrganizationsForCourse returns every organization mapped to the course.
func (r *OrganizationRepositoryImpl) OrganizationsForCourse(ctx context.Context, courseID string, pref query.ReadPreference) ([]*tenant.Organization, error) {
	var orgModels []*models.OrganizationModel

	err := r.db.reader(pref).WithContext(ctx).
		Joins(fmt.Sprintf("JOIN %s oc ON oc.organization_id = %s.id",
			constants.TableOrganizationCourses, constants.TableOrganizations)).
		Where("oc.course_id = ?", courseID).
		Find(&orgModels).Error
	if err != nil {
		r.logger.Errorw("failed to query organizations for course", "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to query organizations for course: %w", err)
	}

	return r.mapper.ToEntities(orgModels)
}

// CourseKeysForTenant returns the course ids owned by the tenant through its organizations.
func (r *OrganizationRepositoryImpl) CourseKeysForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]string, error) {
	var courseIDs []string

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.OrganizationCourseModel{}).
		Distinct("course_id").
		Joins(fmt.Sprintf("JOIN %s o ON o.id = %s.organization_id",
			constants.TableOrganizations, constants.TableOrganizationCourses)).
		Where("o.tenant_id = ?", tenantID).
		Order("course_id").
		Pluck("course_id", &courseIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query course keys for tenant", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to query course keys for tenant: %w", err)
	}

	return courseIDs, nil
}

// AllCourseKeys returns every course id in the store.
func (r *OrganizationRepositoryImpl) AllCourseKeys(ctx context.Context, pref query.ReadPreference) ([]string, error) {
	var courseIDs []string

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.OrganizationCourseModel{}).
		Distinct("course_id").
		Order("course_id").
		Pluck("course_id", &courseIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query all course keys", "error", err)
		return nil, fmt.Errorf("failed to query all course keys: %w", err)
	}

	return courseIDs, nil
}
