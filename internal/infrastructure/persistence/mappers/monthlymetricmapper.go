package mappers

import (
	"fmt"

	"spyglass/internal/domain/metrics"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/mapper"
)

// MonthlyMetricMapper handles the conversion between domain entities and persistence models
type MonthlyMetricMapper interface {
	ToEntity(model *models.MonthlyMetricModel) (*metrics.MonthlyMetric, error)
	ToModel(entity *metrics.MonthlyMetric) (*models.MonthlyMetricModel, error)
	ToEntities(models []*models.MonthlyMetricModel) ([]*metrics.MonthlyMetric, error)
}

// MonthlyMetricMapperImpl is the concrete implementation of MonthlyMetricMapper
type MonthlyMetricMapperImpl struct{}

// NewMonthlyMetricMapper creates a new monthly metric mapper
func NewMonthlyMetricMapper() MonthlyMetricMapper {
	return &MonthlyMetricMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *MonthlyMetricMapperImpl) ToEntity(model *models.MonthlyMetricModel) (*metrics.MonthlyMetric, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := metrics.ReconstructMonthlyMetric(
		model.ID,
		model.SID,
		model.TenantID,
		metrics.Scope(model.Scope),
		model.CourseID,
		model.UserID,
		model.MonthFor,
		metrics.Counters{
			ActiveUsers:       model.ActiveUsers,
			ActiveLearners:    model.ActiveLearners,
			RegisteredUsers:   model.RegisteredUsers,
			NewUsers:          model.NewUsers,
			CourseEnrollments: model.CourseEnrollments,
			CourseCompletions: model.CourseCompletions,
			AverageProgress:   model.AverageProgress,
		},
		model.MonthlyActiveUsers,
		model.PercentGrade,
		model.LetterGrade,
		model.IsComplete,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct monthly metric entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *MonthlyMetricMapperImpl) ToModel(entity *metrics.MonthlyMetric) (*models.MonthlyMetricModel, error) {
	if entity == nil {
		return nil, nil
	}

	c := entity.Counters()
	return &models.MonthlyMetricModel{
		ID:                 entity.ID(),
		SID:                entity.SID(),
		TenantID:           entity.TenantID(),
		Scope:              string(entity.Scope()),
		CourseID:           entity.CourseID(),
		UserID:             entity.UserID(),
		MonthFor:           entity.MonthFor(),
		ActiveUsers:        c.ActiveUsers,
		ActiveLearners:     c.ActiveLearners,
		RegisteredUsers:    c.RegisteredUsers,
		NewUsers:           c.NewUsers,
		CourseEnrollments:  c.CourseEnrollments,
		CourseCompletions:  c.CourseCompletions,
		AverageProgress:    c.AverageProgress,
		MonthlyActiveUsers: entity.MonthlyActiveUsers(),
		PercentGrade:       entity.PercentGrade(),
		LetterGrade:        entity.LetterGrade(),
		IsComplete:         entity.IsComplete(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *MonthlyMetricMapperImpl) ToEntities(metricModels []*models.MonthlyMetricModel) ([]*metrics.MonthlyMetric, error) {
	return mapper.MapSlicePtrWithID(metricModels, m.ToEntity, func(model *models.MonthlyMetricModel) uint {
		return model.ID
	})
}
