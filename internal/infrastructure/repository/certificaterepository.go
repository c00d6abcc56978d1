package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"spyglass/internal/domain/learning"
	"spyglass/internal/infrastructure/persistence/models"
	apperrors "spyglass/internal/shared/errors"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

// CertificateRepositoryImpl implements the learning.CertificateRepository interface
type CertificateRepositoryImpl struct {
	db     dbSet
	logger logger.Interface
}

// NewCertificateRepository creates a new certificate repository instance
func NewCertificateRepository(primary, replica *gorm.DB, logger logger.Interface) learning.CertificateRepository {
	return &CertificateRepositoryImpl{
		db:     newDBSet(primary, replica),
		logger: logger,
	}
}

// UserIDsForCourseAsOf returns the distinct user ids holding a certificate
// for the course issued on or before asOf.
func (r *CertificateRepositoryImpl) UserIDsForCourseAsOf(ctx context.Context, courseID string, asOf time.Time, pref query.ReadPreference) ([]uint, error) {
	var userIDs []uint

	err := r.db.reader(pref).WithContext(ctx).
		Model(&models.CourseCertificateModel{}).
		Distinct("user_id").
		Where("course_id = ? AND created_at <= ?", courseID, asOf).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		r.logger.Errorw("failed to query certificate holders", "course_id", courseID, "error", err)
		return nil, apperrors.WrapUnavailable(err, "failed to query certificate holders")
	}

	return userIDs, nil
}
