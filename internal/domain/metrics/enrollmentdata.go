package metrics

import (
	"fmt"
	"time"

	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/id"
)

// EnrollmentData is a denormalized enrollment snapshot keyed uniquely by
// (tenant, user, course). It holds the latest enrollment and progress state,
// refreshed by backfill and read by reporting.
type EnrollmentData struct {
	id              uint
	sid             string // Stripe-style ID: ed_xxx
	tenantID        uint
	userID          uint
	courseID        string
	enrolledAt      time.Time
	isActive        bool
	progressPercent float64
	isComplete      bool
	letterGrade     string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewEnrollmentData creates a new enrollment snapshot.
func NewEnrollmentData(tenantID, userID uint, courseID string, enrolledAt time.Time, isActive bool) (*EnrollmentData, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if courseID == "" {
		return nil, fmt.Errorf("course ID is required")
	}
	if enrolledAt.IsZero() {
		return nil, fmt.Errorf("enrollment date cannot be zero")
	}

	sid, err := id.NewEnrollmentDataID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &EnrollmentData{
		sid:        sid,
		tenantID:   tenantID,
		userID:     userID,
		courseID:   courseID,
		enrolledAt: enrolledAt,
		isActive:   isActive,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructEnrollmentData reconstructs an enrollment snapshot from persistence.
func ReconstructEnrollmentData(
	recordID uint,
	sid string,
	tenantID, userID uint,
	courseID string,
	enrolledAt time.Time,
	isActive bool,
	progressPercent float64,
	isComplete bool,
	letterGrade string,
	createdAt, updatedAt time.Time,
) (*EnrollmentData, error) {
	if recordID == 0 {
		return nil, fmt.Errorf("enrollment data ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("enrollment data SID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if courseID == "" {
		return nil, fmt.Errorf("course ID is required")
	}

	return &EnrollmentData{
		id:              recordID,
		sid:             sid,
		tenantID:        tenantID,
		userID:          userID,
		courseID:        courseID,
		enrolledAt:      enrolledAt,
		isActive:        isActive,
		progressPercent: progressPercent,
		isComplete:      isComplete,
		letterGrade:     letterGrade,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// ID returns the snapshot record ID.
func (e *EnrollmentData) ID() uint {
	return e.id
}

// SID returns the Stripe-style ID.
func (e *EnrollmentData) SID() string {
	return e.sid
}

// TenantID returns the owning tenant ID.
func (e *EnrollmentData) TenantID() uint {
	return e.tenantID
}

// UserID returns the learner's user ID.
func (e *EnrollmentData) UserID() uint {
	return e.userID
}

// CourseID returns the course id.
func (e *EnrollmentData) CourseID() string {
	return e.courseID
}

// EnrolledAt returns the enrollment date.
func (e *EnrollmentData) EnrolledAt() time.Time {
	return e.enrolledAt
}

// IsActive reports whether the enrollment is active.
func (e *EnrollmentData) IsActive() bool {
	return e.isActive
}

// ProgressPercent returns the learner's fractional progress in [0, 1].
func (e *EnrollmentData) ProgressPercent() float64 {
	return e.progressPercent
}

// IsComplete reports whether the learner completed the course.
func (e *EnrollmentData) IsComplete() bool {
	return e.isComplete
}

// LetterGrade returns the learner's letter grade, if any.
func (e *EnrollmentData) LetterGrade() string {
	return e.letterGrade
}

// CreatedAt returns when the snapshot was created.
func (e *EnrollmentData) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the snapshot was last refreshed.
func (e *EnrollmentData) UpdatedAt() time.Time {
	return e.updatedAt
}

// Refresh updates the snapshot from the latest enrollment and progress state.
func (e *EnrollmentData) Refresh(enrolledAt time.Time, isActive bool, progressPercent float64, isComplete bool, letterGrade string) {
	e.enrolledAt = enrolledAt
	e.isActive = isActive
	e.progressPercent = progressPercent
	e.isComplete = isComplete
	e.letterGrade = letterGrade
	e.updatedAt = biztime.NowUTC()
}

// SetID sets the snapshot record ID (only for persistence layer use).
func (e *EnrollmentData) SetID(recordID uint) error {
	if e.id != 0 {
		return fmt.Errorf("enrollment data ID is already set")
	}
	if recordID == 0 {
		return fmt.Errorf("enrollment data ID cannot be zero")
	}
	e.id = recordID
	return nil
}
