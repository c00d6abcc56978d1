package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"spyglass/internal/domain/tenant"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/constants"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

// MembershipRepositoryImpl implements the tenant.MembershipRepository
// interface. Learner queries exclude staff, superusers, and members of the
// administrative configuration group by joining on the users table.
type MembershipRepositoryImpl struct {
	db     dbSet
	logger logger.Interface
}

// NewMembershipRepository creates a new membership repository instance
func NewMembershipRepository(primary, replica *gorm.DB, logger logger.Interface) tenant.MembershipRepository {
	return &MembershipRepositoryImpl{
		db:     newDBSet(primary, replica),
		logger: logger,
	}
}

// TenantIDsForUser returns the ids of every tenant the user belongs to.
func (r *MembershipRepositoryImpl) TenantIDsForUser(ctx context.Context, userID uint, pref query.ReadPreference) ([]uint, error) {
	var tenantIDs []uint

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.TenantUserModel{}).
		Where("user_id = ?", userID).
		Order("tenant_id").
		Pluck("tenant_id", &tenantIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query tenant ids for user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to query tenant ids for user: %w", err)
	}

	return tenantIDs, nil
}

// MemberIDsForTenant returns every user id belonging to the tenant.
func (r *MembershipRepositoryImpl) MemberIDsForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]uint, error) {
	var userIDs []uint

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.TenantUserModel{}).
		Where("tenant_id = ?", tenantID).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query member ids for tenant", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to query member ids for tenant: %w", err)
	}

	return userIDs, nil
}

// AllMemberIDs returns every user id in the store.
func (r *MembershipRepositoryImpl) AllMemberIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error) {
	var userIDs []uint

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.UserModel{}).
		Order("id").
		Pluck("id", &userIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query all member ids", "error", err)
		return nil, fmt.Errorf("failed to query all member ids: %w", err)
	}

	return userIDs, nil
}

// LearnerIDsForTenant returns the learner user ids for the tenant.
func (r *MembershipRepositoryImpl) LearnerIDsForTenant(ctx context.Context, tenantID uint, pref query.ReadPreference) ([]uint, error) {
	var userIDs []uint

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.TenantUserModel{}).
		Joins(fmt.Sprintf("JOIN %s u ON u.id = %s.user_id",
			constants.TableUsers, constants.TableTenantUsers)).
		Where("tenant_id = ?", tenantID).
		Where("u.is_staff = ? AND u.is_superuser = ? AND u.in_admin_group = ?", false, false, false).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query learner ids for tenant", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to query learner ids for tenant: %w", err)
	}

	return userIDs, nil
}

// AllLearnerIDs returns every learner user id in the store.
func (r *MembershipRepositoryImpl) AllLearnerIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error) {
	var userIDs []uint

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.UserModel{}).
		Where("is_staff = ? AND is_superuser = ? AND in_admin_group = ?", false, false, false).
		Order("id").
		Pluck("id", &userIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query all learner ids", "error", err)
		return nil, fmt.Errorf("failed to query all learner ids: %w", err)
	}

	return userIDs, nil
}

// RegisteredUserCount returns the cumulative count of tenant memberships
// created on or before asOf.
func (r *MembershipRepositoryImpl) RegisteredUserCount(ctx context.Context, tenantID uint, asOf time.Time, pref query.ReadPreference) (int64, error) {
	var count int64

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.TenantUserModel{}).
		Where("tenant_id = ? AND created_at <= ?", tenantID, asOf).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count registered users", "tenant_id", tenantID, "error", err)
		return 0, fmt.Errorf("failed to count registered users: %w", err)
	}

	return count, nil
}

// NewUserCount returns the count of tenant memberships created within [from, to).
func (r *MembershipRepositoryImpl) NewUserCount(ctx context.Context, tenantID uint, from, to time.Time, pref query.ReadPreference) (int64, error) {
	var count int64

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.TenantUserModel{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count new users", "tenant_id", tenantID, "error", err)
		return 0, fmt.Errorf("failed to count new users: %w", err)
	}

	return count, nil
}

// GlobalRegisteredUserCount counts users registered on or before asOf.
func (r *MembershipRepositoryImpl) GlobalRegisteredUserCount(ctx context.Context, asOf time.Time, pref query.ReadPreference) (int64, error) {
	var count int64

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.UserModel{}).
		Where("date_joined <= ?", asOf).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count registered users globally", "error", err)
		return 0, fmt.Errorf("failed to count registered users globally: %w", err)
	}

	return count, nil
}

// GlobalNewUserCount counts users registered within [from, to).
func (r *MembershipRepositoryImpl) GlobalNewUserCount(ctx context.Context, from, to time.Time, pref query.ReadPreference) (int64, error) {
	var count int64

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.UserModel{}).
		Where("date_joined >= ? AND date_joined < ?", from, to).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count new users globally", "error", err)
		return 0, fmt.Errorf("failed to count new users globally: %w", err)
	}

	return count, nil
}
