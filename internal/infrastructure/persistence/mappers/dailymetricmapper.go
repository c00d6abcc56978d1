package mappers

import (
	"fmt"

	"spyglass/internal/domain/metrics"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/mapper"
)

// DailyMetricMapper handles the conversion between domain entities and persistence models
type DailyMetricMapper interface {
	ToEntity(model *models.DailyMetricModel) (*metrics.DailyMetric, error)
	ToModel(entity *metrics.DailyMetric) (*models.DailyMetricModel, error)
	ToEntities(models []*models.DailyMetricModel) ([]*metrics.DailyMetric, error)
}

// DailyMetricMapperImpl is the concrete implementation of DailyMetricMapper
type DailyMetricMapperImpl struct{}

// NewDailyMetricMapper creates a new daily metric mapper
func NewDailyMetricMapper() DailyMetricMapper {
	return &DailyMetricMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *DailyMetricMapperImpl) ToEntity(model *models.DailyMetricModel) (*metrics.DailyMetric, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := metrics.ReconstructDailyMetric(
		model.ID,
		model.SID,
		model.TenantID,
		metrics.Scope(model.Scope),
		model.CourseID,
		model.DateFor,
		metrics.Counters{
			ActiveUsers:       model.ActiveUsers,
			ActiveLearners:    model.ActiveLearners,
			RegisteredUsers:   model.RegisteredUsers,
			NewUsers:          model.NewUsers,
			CourseEnrollments: model.CourseEnrollments,
			CourseCompletions: model.CourseCompletions,
			AverageProgress:   model.AverageProgress,
		},
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct daily metric entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *DailyMetricMapperImpl) ToModel(entity *metrics.DailyMetric) (*models.DailyMetricModel, error) {
	if entity == nil {
		return nil, nil
	}

	c := entity.Counters()
	return &models.DailyMetricModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		TenantID:          entity.TenantID(),
		Scope:             string(entity.Scope()),
		CourseID:          entity.CourseID(),
		DateFor:           entity.DateFor(),
		ActiveUsers:       c.ActiveUsers,
		ActiveLearners:    c.ActiveLearners,
		RegisteredUsers:   c.RegisteredUsers,
		NewUsers:          c.NewUsers,
		CourseEnrollments: c.CourseEnrollments,
		CourseCompletions: c.CourseCompletions,
		AverageProgress:   c.AverageProgress,
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *DailyMetricMapperImpl) ToEntities(metricModels []*models.DailyMetricModel) ([]*metrics.DailyMetric, error) {
	return mapper.MapSlicePtrWithID(metricModels, m.ToEntity, func(model *models.DailyMetricModel) uint {
		return model.ID
	})
}
