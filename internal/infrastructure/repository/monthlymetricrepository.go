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

// MonthlyMetricRepositoryImpl implements the metrics.MonthlyMetricRepository interface
type MonthlyMetricRepositoryImpl struct {
	db     dbSet
	mapper mappers.MonthlyMetricMapper
	logger logger.Interface
}

// NewMonthlyMetricRepository creates a new monthly metric repository instance
func NewMonthlyMetricRepository(primary, replica *gorm.DB, logger logger.Interface) metrics.MonthlyMetricRepository {
	return &MonthlyMetricRepositoryImpl{
		db:     newDBSet(primary, replica),
		mapper: mappers.NewMonthlyMetricMapper(),
		logger: logger,
	}
}

// FindByKey retrieves the record for a metric key. Returns (nil, nil) when absent.
func (r *MonthlyMetricRepositoryImpl) FindByKey(ctx context.Context, tenantID uint, scope metrics.Scope, courseID string, userID uint, monthFor time.Time) (*metrics.MonthlyMetric, error) {
	var model models.MonthlyMetricModel

	err := r.db.writer().WithContext(ctx).
		Where("tenant_id = ? AND scope = ? AND course_id = ? AND user_id = ? AND month_for = ?",
			tenantID, string(scope), courseID, userID, monthFor).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find monthly metric", "tenant_id", tenantID, "scope", scope, "course_id", courseID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to find monthly metric: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// FindLatestForLearner returns the most recent learner-scope record for a
// (user, course) pair, or (nil, nil) when none exists.
func (r *MonthlyMetricRepositoryImpl) FindLatestForLearner(ctx context.Context, tenantID, userID uint, courseID string) (*metrics.MonthlyMetric, error) {
	var model models.MonthlyMetricModel

	err := r.db.writer().WithContext(ctx).
		Where("tenant_id = ? AND scope = ? AND course_id = ? AND user_id = ?",
			tenantID, string(metrics.ScopeLearner), courseID, userID).
		Order("month_for DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find latest learner metric", "tenant_id", tenantID, "user_id", userID, "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to find latest learner metric: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Upsert inserts the record or replaces the counters of the existing record
// with the same key.
func (r *MonthlyMetricRepositoryImpl) Upsert(ctx context.Context, m *metrics.MonthlyMetric) error {
	model, err := r.mapper.ToModel(m)
	if err != nil {
		r.logger.Errorw("failed to map monthly metric entity to model", "error", err)
		return fmt.Errorf("failed to map monthly metric entity: %w", err)
	}

	err = r.db.writer().WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "tenant_id"},
			{Name: "scope"},
			{Name: "course_id"},
			{Name: "user_id"},
			{Name: "month_for"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"active_users",
			"active_learners",
			"registered_users",
			"new_users",
			"course_enrollments",
			"course_completions",
			"average_progress",
			"monthly_active_users",
			"percent_grade",
			"letter_grade",
			"is_complete",
			"updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert monthly metric", "tenant_id", model.TenantID, "scope", model.Scope, "course_id", model.CourseID, "error", err)
		return fmt.Errorf("failed to upsert monthly metric: %w", err)
	}

	if m.ID() == 0 && model.ID != 0 {
		if err := m.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set monthly metric ID: %w", err)
		}
	}

	return nil
}
