package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"spyglass/internal/domain/tenant"
	"spyglass/internal/infrastructure/persistence/mappers"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/logger"
)

// TenantRepositoryImpl implements the tenant.Repository interface
type TenantRepositoryImpl struct {
	db     dbSet
	mapper mappers.TenantMapper
	logger logger.Interface
}

// NewTenantRepository creates a new tenant repository instance
func NewTenantRepository(primary, replica *gorm.DB, logger logger.Interface) tenant.Repository {
	return &TenantRepositoryImpl{
		db:     newDBSet(primary, replica),
		mapper: mappers.NewTenantMapper(),
		logger: logger,
	}
}

// FindByID retrieves a tenant by its numeric ID
func (r *TenantRepositoryImpl) FindByID(ctx context.Context, tenantID uint) (*tenant.Tenant, error) {
	var model models.TenantModel

	if err := r.db.writer().WithContext(ctx).First(&model, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find tenant", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// FindBySID retrieves a tenant by its Stripe-style ID
func (r *TenantRepositoryImpl) FindBySID(ctx context.Context, sid string) (*tenant.Tenant, error) {
	var model models.TenantModel

	if err := r.db.writer().WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find tenant by sid", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to find tenant by sid: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// List returns all tenants ordered by ID
func (r *TenantRepositoryImpl) List(ctx context.Context) ([]*tenant.Tenant, error) {
	var tenantModels []*models.TenantModel

	if err := r.db.writer().WithContext(ctx).Order("id").Find(&tenantModels).Error; err != nil {
		r.logger.Errorw("failed to list tenants", "error", err)
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	return r.mapper.ToEntities(tenantModels)
}
