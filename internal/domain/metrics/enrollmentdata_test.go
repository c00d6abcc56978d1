package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestNewEnrollmentData_Valid(t *testing.T) {
	enrolledAt := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	e, err := NewEnrollmentData(1, 42, "course-1", enrolledAt, true)
	if err != nil {
		t.Fatalf("NewEnrollmentData() error = %v, want nil", err)
	}
	if e.TenantID() != 1 || e.UserID() != 42 || e.CourseID() != "course-1" {
		t.Errorf("key = (%d, %d, %q), want (1, 42, %q)", e.TenantID(), e.UserID(), e.CourseID(), "course-1")
	}
	if !e.IsActive() {
		t.Error("IsActive() = false, want true")
	}
	if e.ProgressPercent() != 0 {
		t.Errorf("ProgressPercent() = %v, want 0", e.ProgressPercent())
	}
	if !strings.HasPrefix(e.SID(), "ed_") {
		t.Errorf("SID() = %q, want ed_ prefix", e.SID())
	}
}

func TestNewEnrollmentData_Invalid(t *testing.T) {
	enrolledAt := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		tenantID   uint
		userID     uint
		courseID   string
		enrolledAt time.Time
	}{
		{"zero tenant", 0, 42, "course-1", enrolledAt},
		{"zero user", 1, 0, "course-1", enrolledAt},
		{"empty course", 1, 42, "", enrolledAt},
		{"zero enrollment date", 1, 42, "course-1", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEnrollmentData(tt.tenantID, tt.userID, tt.courseID, tt.enrolledAt, true)
			if err == nil {
				t.Error("NewEnrollmentData() error = nil, want error")
			}
		})
	}
}

func TestEnrollmentData_Refresh(t *testing.T) {
	enrolledAt := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	e, err := NewEnrollmentData(1, 42, "course-1", enrolledAt, true)
	if err != nil {
		t.Fatalf("NewEnrollmentData() error = %v", err)
	}

	newEnrolledAt := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	e.Refresh(newEnrolledAt, false, 0.75, false, "C")

	if !e.EnrolledAt().Equal(newEnrolledAt) {
		t.Errorf("EnrolledAt() = %v, want %v", e.EnrolledAt(), newEnrolledAt)
	}
	if e.IsActive() {
		t.Error("IsActive() = true, want false")
	}
	if e.ProgressPercent() != 0.75 {
		t.Errorf("ProgressPercent() = %v, want 0.75", e.ProgressPercent())
	}
	if e.LetterGrade() != "C" {
		t.Errorf("LetterGrade() = %q, want %q", e.LetterGrade(), "C")
	}
}

func TestReconstructEnrollmentData(t *testing.T) {
	now := time.Now().UTC()
	enrolledAt := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	e, err := ReconstructEnrollmentData(4, "ed_abc123", 1, 42, "course-1", enrolledAt, true, 1.0, true, "A", now, now)
	if err != nil {
		t.Fatalf("ReconstructEnrollmentData() error = %v, want nil", err)
	}
	if e.ID() != 4 {
		t.Errorf("ID() = %d, want 4", e.ID())
	}
	if !e.IsComplete() {
		t.Error("IsComplete() = false, want true")
	}

	if _, err := ReconstructEnrollmentData(0, "ed_abc", 1, 42, "course-1", enrolledAt, true, 0, false, "", now, now); err == nil {
		t.Error("ReconstructEnrollmentData() with zero ID error = nil, want error")
	}
	if _, err := ReconstructEnrollmentData(4, "ed_abc", 1, 42, "", enrolledAt, true, 0, false, "", now, now); err == nil {
		t.Error("ReconstructEnrollmentData() with empty course error = nil, want error")
	}
}
