package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spyglass/internal/domain/metrics"
	"spyglass/internal/infrastructure/persistence/mappers"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/logger"
)

// EnrollmentDataRepositoryImpl implements the metrics.EnrollmentDataRepository interface
type EnrollmentDataRepositoryImpl struct {
	db     dbSet
	mapper mappers.EnrollmentDataMapper
	logger logger.Interface
}

// NewEnrollmentDataRepository creates a new enrollment data repository instance
func NewEnrollmentDataRepository(primary, replica *gorm.DB, logger logger.Interface) metrics.EnrollmentDataRepository {
	return &EnrollmentDataRepositoryImpl{
		db:     newDBSet(primary, replica),
		mapper: mappers.NewEnrollmentDataMapper(),
		logger: logger,
	}
}

// FindByKey retrieves the snapshot for (tenant, user, course). Returns
// (nil, nil) when absent.
func (r *EnrollmentDataRepositoryImpl) FindByKey(ctx context.Context, tenantID, userID uint, courseID string) (*metrics.EnrollmentData, error) {
	var model models.EnrollmentDataModel

	err := r.db.writer().WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND course_id = ?", tenantID, userID, courseID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find enrollment data", "tenant_id", tenantID, "user_id", userID, "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to find enrollment data: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Upsert inserts the snapshot or refreshes the existing record with the same key.
func (r *EnrollmentDataRepositoryImpl) Upsert(ctx context.Context, e *metrics.EnrollmentData) error {
	model, err := r.mapper.ToModel(e)
	if err != nil {
		r.logger.Errorw("failed to map enrollment data entity to model", "error", err)
		return fmt.Errorf("failed to map enrollment data entity: %w", err)
	}

	err = r.db.writer().WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "tenant_id"},
			{Name: "user_id"},
			{Name: "course_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"enrolled_at",
			"is_active",
			"progress_percent",
			"is_complete",
			"letter_grade",
			"updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert enrollment data", "tenant_id", model.TenantID, "user_id", model.UserID, "course_id", model.CourseID, "error", err)
		return fmt.Errorf("failed to upsert enrollment data: %w", err)
	}

	if e.ID() == 0 && model.ID != 0 {
		if err := e.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set enrollment data ID: %w", err)
		}
	}

	return nil
}
