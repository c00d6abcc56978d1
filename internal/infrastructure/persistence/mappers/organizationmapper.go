package mappers

import (
	"fmt"

	"spyglass/internal/domain/tenant"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/mapper"
)

// OrganizationMapper handles the conversion between domain entities and persistence models
type OrganizationMapper interface {
	ToEntity(model *models.OrganizationModel) (*tenant.Organization, error)
	ToModel(entity *tenant.Organization) (*models.OrganizationModel, error)
	ToEntities(models []*models.OrganizationModel) ([]*tenant.Organization, error)
}

// OrganizationMapperImpl is the concrete implementation of OrganizationMapper
type OrganizationMapperImpl struct{}

// NewOrganizationMapper creates a new organization mapper
func NewOrganizationMapper() OrganizationMapper {
	return &OrganizationMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *OrganizationMapperImpl) ToEntity(model *models.OrganizationModel) (*tenant.Organization, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := tenant.ReconstructOrganization(
		model.ID,
		model.SID,
		model.Name,
		model.TenantID,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct organization entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *OrganizationMapperImpl) ToModel(entity *tenant.Organization) (*models.OrganizationModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.OrganizationModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		Name:      entity.Name(),
		TenantID:  entity.TenantID(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *OrganizationMapperImpl) ToEntities(orgModels []*models.OrganizationModel) ([]*tenant.Organization, error) {
	return mapper.MapSlicePtrWithID(orgModels, m.ToEntity, func(model *models.OrganizationModel) uint {
		return model.ID
	})
}
