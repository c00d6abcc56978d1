package learning

import (
	"context"
	"time"

	"spyglass/internal/shared/query"
)

// EnrollmentRecord is a learner's enrollment in a course as recorded by the
// learning platform.
type EnrollmentRecord struct {
	ID         uint
	UserID     uint
	CourseID   string
	EnrolledAt time.Time
	IsActive   bool
}

// EnrollmentRepository queries the enrollment store.
type EnrollmentRepository interface {
	// ForCourses returns one page of enrollments for the given courses,
	// ordered by record id so successive pages never overlap.
	ForCourses(ctx context.Context, courseIDs []string, page query.PageFilter, pref query.ReadPreference) ([]*EnrollmentRecord, error)

	// ForCourse returns every enrollment for a single course.
	ForCourse(ctx context.Context, courseID string, pref query.ReadPreference) ([]*EnrollmentRecord, error)

	// CountForCourseAsOf returns the cumulative enrollment count for the
	// course as of the given instant.
	CountForCourseAsOf(ctx context.Context, courseID string, asOf time.Time, pref query.ReadPreference) (int64, error)
}

// CertificateRecord marks a completion certificate issued to a learner.
type CertificateRecord struct {
	ID        uint
	UserID    uint
	CourseID  string
	CreatedAt time.Time
}

// CertificateRepository queries the certificate store.
type CertificateRepository interface {
	// UserIDsForCourseAsOf returns the distinct user ids holding a
	// certificate for the course issued on or before asOf.
	UserIDsForCourseAsOf(ctx context.Context, courseID string, asOf time.Time, pref query.ReadPreference) ([]uint, error)
}

// UserProfileRepository is the single write path into the platform's user
// store: the denormalized last-course-activity timestamp maintained by the
// activity cutover migration.
type UserProfileRepository interface {
	// SetLastCourseActivityAt sets the user's denormalized last course
	// activity timestamp, last-write-wins.
	SetLastCourseActivityAt(ctx context.Context, userID uint, ts time.Time) error
}
