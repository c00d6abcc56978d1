package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"spyglass/internal/domain/learning"
	"spyglass/internal/infrastructure/persistence/models"
	apperrors "spyglass/internal/shared/errors"
	"spyglass/internal/shared/logger"
)

// UserProfileRepositoryImpl implements the learning.UserProfileRepository
// interface. This is the pipeline's only write into the platform's tables.
type UserProfileRepositoryImpl struct {
	db     dbSet
	logger logger.Interface
}

// NewUserProfileRepository creates a new user profile repository instance
func NewUserProfileRepository(primary, replica *gorm.DB, logger logger.Interface) learning.UserProfileRepository {
	return &UserProfileRepositoryImpl{
		db:     newDBSet(primary, replica),
		logger: logger,
	}
}

// SetLastCourseActivityAt sets the user's denormalized last course activity
// timestamp. Last write wins.
func (r *UserProfileRepositoryImpl) SetLastCourseActivityAt(ctx context.Context, userID uint, ts time.Time) error {
	result := r.db.writer().WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("last_course_activity_at", ts)
	if result.Error != nil {
		r.logger.Errorw("failed to set last course activity", "user_id", userID, "error", result.Error)
		return apperrors.WrapUnavailable(result.Error, "failed to set last course activity")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}
