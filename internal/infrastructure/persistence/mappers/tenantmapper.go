package mappers

import (
	"fmt"

	"spyglass/internal/domain/tenant"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/mapper"
)

// TenantMapper handles the conversion between domain entities and persistence models
type TenantMapper interface {
	ToEntity(model *models.TenantModel) (*tenant.Tenant, error)
	ToModel(entity *tenant.Tenant) (*models.TenantModel, error)
	ToEntities(models []*models.TenantModel) ([]*tenant.Tenant, error)
}

// TenantMapperImpl is the concrete implementation of TenantMapper
type TenantMapperImpl struct{}

// NewTenantMapper creates a new tenant mapper
func NewTenantMapper() TenantMapper {
	return &TenantMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *TenantMapperImpl) ToEntity(model *models.TenantModel) (*tenant.Tenant, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := tenant.ReconstructTenant(
		model.ID,
		model.SID,
		model.Name,
		model.Domain,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct tenant entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *TenantMapperImpl) ToModel(entity *tenant.Tenant) (*models.TenantModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.TenantModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		Name:      entity.Name(),
		Domain:    entity.Domain(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *TenantMapperImpl) ToEntities(tenantModels []*models.TenantModel) ([]*tenant.Tenant, error) {
	return mapper.MapSlicePtrWithID(tenantModels, m.ToEntity, func(model *models.TenantModel) uint {
		return model.ID
	})
}
