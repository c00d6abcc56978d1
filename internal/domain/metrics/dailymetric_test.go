package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestNewDailyMetric_Valid(t *testing.T) {
	date := time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		scope    Scope
		courseID string
	}{
		{"course scope", ScopeCourse, "course-v1:edX+Demo+2023"},
		{"site scope", ScopeSite, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewDailyMetric(1, tt.scope, tt.courseID, date)
			if err != nil {
				t.Fatalf("NewDailyMetric() error = %v, want nil", err)
			}
			if m.TenantID() != 1 {
				t.Errorf("TenantID() = %d, want 1", m.TenantID())
			}
			if m.Scope() != tt.scope {
				t.Errorf("Scope() = %v, want %v", m.Scope(), tt.scope)
			}
			if m.CourseID() != tt.courseID {
				t.Errorf("CourseID() = %q, want %q", m.CourseID(), tt.courseID)
			}
			if !strings.HasPrefix(m.SID(), "dm_") {
				t.Errorf("SID() = %q, want dm_ prefix", m.SID())
			}
		})
	}
}

func TestNewDailyMetric_NormalizesDate(t *testing.T) {
	date := time.Date(2023, 1, 15, 23, 59, 59, 0, time.UTC)

	m, err := NewDailyMetric(1, ScopeCourse, "course-1", date)
	if err != nil {
		t.Fatalf("NewDailyMetric() error = %v, want nil", err)
	}

	want := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	if !m.DateFor().Equal(want) {
		t.Errorf("DateFor() = %v, want %v", m.DateFor(), want)
	}
}

func TestNewDailyMetric_Invalid(t *testing.T) {
	date := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		tenantID uint
		scope    Scope
		courseID string
		dateFor  time.Time
	}{
		{"zero tenant", 0, ScopeCourse, "course-1", date},
		{"learner scope not allowed daily", 1, ScopeLearner, "course-1", date},
		{"invalid scope", 1, Scope("bogus"), "course-1", date},
		{"course scope without course", 1, ScopeCourse, "", date},
		{"site scope with course", 1, ScopeSite, "course-1", date},
		{"zero date", 1, ScopeCourse, "course-1", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDailyMetric(tt.tenantID, tt.scope, tt.courseID, tt.dateFor)
			if err == nil {
				t.Error("NewDailyMetric() error = nil, want error")
			}
		})
	}
}

func TestDailyMetric_SetCounters(t *testing.T) {
	m, err := NewDailyMetric(1, ScopeCourse, "course-1", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewDailyMetric() error = %v", err)
	}

	c := Counters{
		ActiveUsers:       12,
		ActiveLearners:    10,
		CourseEnrollments: 40,
		CourseCompletions: 3,
		AverageProgress:   0.55,
	}
	m.SetCounters(c)

	if m.Counters() != c {
		t.Errorf("Counters() = %+v, want %+v", m.Counters(), c)
	}
}

func TestDailyMetric_SetID(t *testing.T) {
	m, err := NewDailyMetric(1, ScopeCourse, "course-1", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewDailyMetric() error = %v", err)
	}

	if err := m.SetID(0); err == nil {
		t.Error("SetID(0) error = nil, want error")
	}
	if err := m.SetID(7); err != nil {
		t.Errorf("SetID(7) error = %v, want nil", err)
	}
	if m.ID() != 7 {
		t.Errorf("ID() = %d, want 7", m.ID())
	}
	if err := m.SetID(8); err == nil {
		t.Error("SetID on already-set ID error = nil, want error")
	}
}

func TestReconstructDailyMetric(t *testing.T) {
	now := time.Now().UTC()
	date := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	counters := Counters{ActiveUsers: 5, AverageProgress: 0.25}

	m, err := ReconstructDailyMetric(3, "dm_abc123", 1, ScopeCourse, "course-1", date, counters, now, now)
	if err != nil {
		t.Fatalf("ReconstructDailyMetric() error = %v, want nil", err)
	}
	if m.ID() != 3 {
		t.Errorf("ID() = %d, want 3", m.ID())
	}
	if m.Counters() != counters {
		t.Errorf("Counters() = %+v, want %+v", m.Counters(), counters)
	}

	tests := []struct {
		name     string
		metricID uint
		sid      string
		tenantID uint
		scope    Scope
	}{
		{"zero id", 0, "dm_abc", 1, ScopeCourse},
		{"empty sid", 3, "", 1, ScopeCourse},
		{"zero tenant", 3, "dm_abc", 0, ScopeCourse},
		{"invalid scope", 3, "dm_abc", 1, Scope("bogus")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReconstructDailyMetric(tt.metricID, tt.sid, tt.tenantID, tt.scope, "course-1", date, counters, now, now)
			if err == nil {
				t.Error("ReconstructDailyMetric() error = nil, want error")
			}
		})
	}
}

func TestDailyMetric_Validate(t *testing.T) {
	m, err := NewDailyMetric(1, ScopeCourse, "course-1", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewDailyMetric() error = %v", err)
	}

	m.SetCounters(Counters{AverageProgress: 0.5})
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	m.SetCounters(Counters{AverageProgress: 1.5})
	if err := m.Validate(); err == nil {
		t.Error("Validate() with progress above 1 error = nil, want error")
	}
}
