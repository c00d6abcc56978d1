package mappers

import (
	"fmt"

	"spyglass/internal/domain/metrics"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/mapper"
)

// EnrollmentDataMapper handles the conversion between domain entities and persistence models
type EnrollmentDataMapper interface {
	ToEntity(model *models.EnrollmentDataModel) (*metrics.EnrollmentData, error)
	ToModel(entity *metrics.EnrollmentData) (*models.EnrollmentDataModel, error)
	ToEntities(models []*models.EnrollmentDataModel) ([]*metrics.EnrollmentData, error)
}

// EnrollmentDataMapperImpl is the concrete implementation of EnrollmentDataMapper
type EnrollmentDataMapperImpl struct{}

// NewEnrollmentDataMapper creates a new enrollment data mapper
func NewEnrollmentDataMapper() EnrollmentDataMapper {
	return &EnrollmentDataMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *EnrollmentDataMapperImpl) ToEntity(model *models.EnrollmentDataModel) (*metrics.EnrollmentData, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := metrics.ReconstructEnrollmentData(
		model.ID,
		model.SID,
		model.TenantID,
		model.UserID,
		model.CourseID,
		model.EnrolledAt,
		model.IsActive,
		model.ProgressPercent,
		model.IsComplete,
		model.LetterGrade,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct enrollment data entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *EnrollmentDataMapperImpl) ToModel(entity *metrics.EnrollmentData) (*models.EnrollmentDataModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.EnrollmentDataModel{
		ID:              entity.ID(),
		SID:             entity.SID(),
		TenantID:        entity.TenantID(),
		UserID:          entity.UserID(),
		CourseID:        entity.CourseID(),
		EnrolledAt:      entity.EnrolledAt(),
		IsActive:        entity.IsActive(),
		ProgressPercent: entity.ProgressPercent(),
		IsComplete:      entity.IsComplete(),
		LetterGrade:     entity.LetterGrade(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *EnrollmentDataMapperImpl) ToEntities(dataModels []*models.EnrollmentDataModel) ([]*metrics.EnrollmentData, error) {
	return mapper.MapSlicePtrWithID(dataModels, m.ToEntity, func(model *models.EnrollmentDataModel) uint {
		return model.ID
	})
}
