package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestNewMonthlyMetric_Valid(t *testing.T) {
	month := time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		scope    Scope
		courseID string
		userID   uint
	}{
		{"site scope", ScopeSite, "", 0},
		{"course scope", ScopeCourse, "course-1", 0},
		{"learner scope", ScopeLearner, "course-1", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMonthlyMetric(1, tt.scope, tt.courseID, tt.userID, month)
			if err != nil {
				t.Fatalf("NewMonthlyMetric() error = %v, want nil", err)
			}
			if m.Scope() != tt.scope {
				t.Errorf("Scope() = %v, want %v", m.Scope(), tt.scope)
			}
			if m.UserID() != tt.userID {
				t.Errorf("UserID() = %d, want %d", m.UserID(), tt.userID)
			}
			if !strings.HasPrefix(m.SID(), "mm_") {
				t.Errorf("SID() = %q, want mm_ prefix", m.SID())
			}

			wantMonth := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
			if !m.MonthFor().Equal(wantMonth) {
				t.Errorf("MonthFor() = %v, want %v", m.MonthFor(), wantMonth)
			}
		})
	}
}

func TestNewMonthlyMetric_Invalid(t *testing.T) {
	month := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		tenantID uint
		scope    Scope
		courseID string
		userID   uint
		monthFor time.Time
	}{
		{"zero tenant", 0, ScopeSite, "", 0, month},
		{"invalid scope", 1, Scope("bogus"), "", 0, month},
		{"course scope without course", 1, ScopeCourse, "", 0, month},
		{"site scope with course", 1, ScopeSite, "course-1", 0, month},
		{"learner scope without user", 1, ScopeLearner, "course-1", 0, month},
		{"site scope with user", 1, ScopeSite, "", 42, month},
		{"course scope with user", 1, ScopeCourse, "course-1", 42, month},
		{"zero month", 1, ScopeSite, "", 0, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMonthlyMetric(tt.tenantID, tt.scope, tt.courseID, tt.userID, tt.monthFor)
			if err == nil {
				t.Error("NewMonthlyMetric() error = nil, want error")
			}
		})
	}
}

func TestMonthlyMetric_SetCounters(t *testing.T) {
	m, err := NewMonthlyMetric(1, ScopeSite, "", 0, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewMonthlyMetric() error = %v", err)
	}

	c := Counters{ActiveUsers: 30, RegisteredUsers: 100, NewUsers: 5}
	m.SetCounters(c, 30)

	if m.Counters() != c {
		t.Errorf("Counters() = %+v, want %+v", m.Counters(), c)
	}
	if m.MonthlyActiveUsers() != 30 {
		t.Errorf("MonthlyActiveUsers() = %d, want 30", m.MonthlyActiveUsers())
	}
}

func TestMonthlyMetric_SetGrade(t *testing.T) {
	month := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	learner, err := NewMonthlyMetric(1, ScopeLearner, "course-1", 42, month)
	if err != nil {
		t.Fatalf("NewMonthlyMetric() error = %v", err)
	}
	if err := learner.SetGrade(0.85, "B", false); err != nil {
		t.Fatalf("SetGrade() on learner scope error = %v, want nil", err)
	}
	if learner.PercentGrade() != 0.85 {
		t.Errorf("PercentGrade() = %v, want 0.85", learner.PercentGrade())
	}
	if learner.LetterGrade() != "B" {
		t.Errorf("LetterGrade() = %q, want %q", learner.LetterGrade(), "B")
	}
	if learner.IsComplete() {
		t.Error("IsComplete() = true, want false")
	}

	site, err := NewMonthlyMetric(1, ScopeSite, "", 0, month)
	if err != nil {
		t.Fatalf("NewMonthlyMetric() error = %v", err)
	}
	if err := site.SetGrade(0.85, "B", false); err == nil {
		t.Error("SetGrade() on site scope error = nil, want error")
	}
}

func TestReconstructMonthlyMetric(t *testing.T) {
	now := time.Now().UTC()
	month := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	counters := Counters{ActiveUsers: 30}

	m, err := ReconstructMonthlyMetric(9, "mm_abc123", 1, ScopeLearner, "course-1", 42, month, counters, 30, 0.9, "A", true, now, now)
	if err != nil {
		t.Fatalf("ReconstructMonthlyMetric() error = %v, want nil", err)
	}
	if m.ID() != 9 {
		t.Errorf("ID() = %d, want 9", m.ID())
	}
	if !m.IsComplete() {
		t.Error("IsComplete() = false, want true")
	}
	if m.PercentGrade() != 0.9 {
		t.Errorf("PercentGrade() = %v, want 0.9", m.PercentGrade())
	}

	if _, err := ReconstructMonthlyMetric(0, "mm_abc", 1, ScopeSite, "", 0, month, counters, 0, 0, "", false, now, now); err == nil {
		t.Error("ReconstructMonthlyMetric() with zero ID error = nil, want error")
	}
	if _, err := ReconstructMonthlyMetric(9, "", 1, ScopeSite, "", 0, month, counters, 0, 0, "", false, now, now); err == nil {
		t.Error("ReconstructMonthlyMetric() with empty SID error = nil, want error")
	}
}
