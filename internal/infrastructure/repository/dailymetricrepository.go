package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spyglass/internal/domain/metrics"
	"spyglass/internal/infrastructure/persistence/mappers"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/logger"
)

// DailyMetricRepositoryImpl implements the metrics.DailyMetricRepository
// interface. Upsert conflicts on the (tenant, scope, course, date) unique
// key so that concurrent writers for the same key serialize at the database.
type DailyMetricRepositoryImpl struct {
	db     dbSet
	mapper mappers.DailyMetricMapper
	logger logger.Interface
}

// NewDailyMetricRepository creates a new daily metric repository instance
func NewDailyMetricRepository(primary, replica *gorm.DB, logger logger.Interface) metrics.DailyMetricRepository {
	return &DailyMetricRepositoryImpl{
		db:     newDBSet(primary, replica),
		mapper: mappers.NewDailyMetricMapper(),
		logger: logger,
	}
}

// FindByKey retrieves the record for a metric key. Returns (nil, nil) when absent.
func (r *DailyMetricRepositoryImpl) FindByKey(ctx context.Context, tenantID uint, scope metrics.Scope, courseID string, dateFor time.Time) (*metrics.DailyMetric, error) {
	var model models.DailyMetricModel

	err := r.db.writer().WithContext(ctx).
		Where("tenant_id = ? AND scope = ? AND course_id = ? AND date_for = ?",
			tenantID, string(scope), courseID, dateFor).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find daily metric", "tenant_id", tenantID, "scope", scope, "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to find daily metric: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Upsert inserts the record or replaces the counters of the existing record
// with the same key.
func (r *DailyMetricRepositoryImpl) Upsert(ctx context.Context, m *metrics.DailyMetric) error {
	model, err := r.mapper.ToModel(m)
	if err != nil {
		r.logger.Errorw("failed to map daily metric entity to model", "error", err)
		return fmt.Errorf("failed to map daily metric entity: %w", err)
	}

	err = r.db.writer().WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "tenant_id"},
			{Name: "scope"},
			{Name: "course_id"},
			{Name: "date_for"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"active_users",
			"active_learners",
			"registered_users",
			"new_users",
			"course_enrollments",
			"course_completions",
			"average_progress",
			"updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert daily metric", "tenant_id", model.TenantID, "scope", model.Scope, "course_id", model.CourseID, "error", err)
		return fmt.Errorf("failed to upsert daily metric: %w", err)
	}

	if m.ID() == 0 && model.ID != 0 {
		if err := m.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set daily metric ID: %w", err)
		}
	}

	return nil
}
