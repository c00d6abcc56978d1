package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"spyglass/internal/domain/learning"
	"spyglass/internal/infrastructure/persistence/models"
	apperrors "spyglass/internal/shared/errors"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/mapper"
	"spyglass/internal/shared/query"
)

// EnrollmentRepositoryImpl implements the learning.EnrollmentRepository
// interface over the platform's enrollment table.
type EnrollmentRepositoryImpl struct {
	db     dbSet
	logger logger.Interface
}

// NewEnrollmentRepository creates a new enrollment repository instance
func NewEnrollmentRepository(primary, replica *gorm.DB, logger logger.Interface) learning.EnrollmentRepository {
	return &EnrollmentRepositoryImpl{
		db:     newDBSet(primary, replica),
		logger: logger,
	}
}

func enrollmentRecordFromModel(m *models.CourseEnrollmentModel) *learning.EnrollmentRecord {
	return &learning.EnrollmentRecord{
		ID:         m.ID,
		UserID:     m.UserID,
		CourseID:   m.CourseID,
		EnrolledAt: m.EnrolledAt,
		IsActive:   m.IsActive,
	}
}

// ForCourses returns one page of enrollments for the given courses.
func (r *EnrollmentRepositoryImpl) ForCourses(ctx context.Context, courseIDs []string, page query.PageFilter, pref query.ReadPreference) ([]*learning.EnrollmentRecord, error) {
	if len(courseIDs) == 0 {
		return []*learning.EnrollmentRecord{}, nil
	}

	var enrollmentModels []*models.CourseEnrollmentModel
	err := r.db.reader(pref).WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&enrollmentModels).Error
	if err != nil {
		r.logger.Errorw("failed to query enrollments for courses", "courses", len(courseIDs), "error", err)
		return nil, apperrors.WrapUnavailable(err, "failed to query enrollments for courses")
	}

	return mapper.MapSlice(enrollmentModels, enrollmentRecordFromModel), nil
}

// ForCourse returns every enrollment for a single course.
func (r *EnrollmentRepositoryImpl) ForCourse(ctx context.Context, courseID string, pref query.ReadPreference) ([]*learning.EnrollmentRecord, error) {
	var enrollmentModels []*models.CourseEnrollmentModel

	err := r.db.reader(pref).WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id").
		Find(&enrollmentModels).Error
	if err != nil {
		r.logger.Errorw("failed to query enrollments for course", "course_id", courseID, "error", err)
		return nil, apperrors.WrapUnavailable(err, "failed to query enrollments for course")
	}

	return mapper.MapSlice(enrollmentModels, enrollmentRecordFromModel), nil
}

// CountForCourseAsOf returns the cumulative enrollment count as of the given instant.
func (r *EnrollmentRepositoryImpl) CountForCourseAsOf(ctx context.Context, courseID string, asOf time.Time, pref query.ReadPreference) (int64, error) {
	var count int64

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.CourseEnrollmentModel{}).
		Where("course_id = ? AND enrolled_at <= ?", courseID, asOf).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count enrollments for course", "course_id", courseID, "error", err)
		return 0, apperrors.WrapUnavailable(err, "failed to count enrollments for course")
	}

	return count, nil
}
