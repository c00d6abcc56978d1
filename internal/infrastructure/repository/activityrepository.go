package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"spyglass/internal/domain/learning"
	"spyglass/internal/infrastructure/persistence/models"
	apperrors "spyglass/internal/shared/errors"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

// ActivityRepositoryImpl implements the learning.ActivityRepository
// interface over the platform's raw activity table.
type ActivityRepositoryImpl struct {
	db     dbSet
	logger logger.Interface
}

// NewActivityRepository creates a new activity repository instance
func NewActivityRepository(primary, replica *gorm.DB, logger logger.Interface) learning.ActivityRepository {
	return &ActivityRepositoryImpl{
		db:     newDBSet(primary, replica),
		logger: logger,
	}
}

// ActiveUserIDs returns the distinct user ids with activity in [from, to)
// restricted to the given courses.
func (r *ActivityRepositoryImpl) ActiveUserIDs(ctx context.Context, courseIDs []string, from, to time.Time, pref query.ReadPreference) ([]uint, error) {
	if len(courseIDs) == 0 {
		return []uint{}, nil
	}

	var userIDs []uint
	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.StudentActivityModel{}).
		Distinct("user_id").
		Where("course_id IN ? AND modified_at >= ? AND modified_at < ?", courseIDs, from, to).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query active user ids", "courses", len(courseIDs), "error", err)
		return nil, apperrors.WrapUnavailable(err, "failed to query active user ids")
	}

	return userIDs, nil
}

// ActiveUserIDsForCourse is ActiveUserIDs for a single course.
func (r *ActivityRepositoryImpl) ActiveUserIDsForCourse(ctx context.Context, courseID string, from, to time.Time, pref query.ReadPreference) ([]uint, error) {
	var userIDs []uint

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.StudentActivityModel{}).
		Distinct("user_id").
		Where("course_id = ? AND modified_at >= ? AND modified_at < ?", courseID, from, to).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query active user ids for course", "course_id", courseID, "error", err)
		return nil, apperrors.WrapUnavailable(err, "failed to query active user ids for course")
	}

	return userIDs, nil
}

// EarliestCreatedAt returns the created_at of the oldest activity record for
// the given courses, or nil when no activity exists.
func (r *ActivityRepositoryImpl) EarliestCreatedAt(ctx context.Context, courseIDs []string, pref query.ReadPreference) (*time.Time, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	var model models.StudentActivityModel
	err := r.db.reader(pref).WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to query earliest activity", "courses", len(courseIDs), "error", err)
		return nil, apperrors.WrapUnavailable(err, "failed to query earliest activity")
	}

	return &model.CreatedAt, nil
}

// DistinctUserIDs returns every user id with any recorded activity.
func (r *ActivityRepositoryImpl) DistinctUserIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error) {
	var userIDs []uint

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.StudentActivityModel{}).
		Distinct("user_id").
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query distinct activity user ids", "error", err)
		return nil, apperrors.WrapUnavailable(err, "failed to query distinct activity user ids")
	}

	return userIDs, nil
}

// LatestForUser returns the user's most recent activity record by modified_at.
func (r *ActivityRepositoryImpl) LatestForUser(ctx context.Context, userID uint, pref query.ReadPreference) (*learning.ActivityRecord, error) {
	var model models.StudentActivityModel

	err := r.db.reader(pref).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("modified_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to query latest activity for user", "user_id", userID, "error", err)
		return nil, apperrors.WrapUnavailable(err, "failed to query latest activity for user")
	}

	return &learning.ActivityRecord{
		ID:         model.ID,
		UserID:     model.UserID,
		CourseID:   model.CourseID,
		State:      model.State,
		CreatedAt:  model.CreatedAt,
		ModifiedAt: model.ModifiedAt,
	}, nil
}
