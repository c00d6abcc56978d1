package metrics

import (
	"fmt"
	"time"

	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/id"
)

// MonthlyMetric is a persisted month-granularity metric snapshot, keyed
// uniquely by (tenant, scope, course, user, month_for). The learner scope
// additionally carries grade summaries for one learner-course pair.
// Upsert-only; never deleted.
type MonthlyMetric struct {
	id                 uint
	sid                string // Stripe-style ID: mm_xxx
	tenantID           uint
	scope              Scope
	courseID           string // empty for site scope
	userID             uint   // learner scope only
	monthFor           time.Time
	counters           Counters
	monthlyActiveUsers uint
	percentGrade       float64 // learner scope only
	letterGrade        string  // learner scope only
	isComplete         bool    // learner scope only
	createdAt          time.Time
	updatedAt          time.Time
}

// NewMonthlyMetric creates a new monthly metric record. monthFor is
// normalized to the first day of its calendar month.
func NewMonthlyMetric(tenantID uint, scope Scope, courseID string, userID uint, monthFor time.Time) (*MonthlyMetric, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid monthly metric scope: %s", scope)
	}
	if scope.RequiresCourse() && courseID == "" {
		return nil, fmt.Errorf("course ID is required for %s scope", scope)
	}
	if scope == ScopeSite && courseID != "" {
		return nil, fmt.Errorf("course ID must be empty for site scope")
	}
	if scope.RequiresUser() && userID == 0 {
		return nil, fmt.Errorf("user ID is required for learner scope")
	}
	if !scope.RequiresUser() && userID != 0 {
		return nil, fmt.Errorf("user ID must be zero for %s scope", scope)
	}
	if monthFor.IsZero() {
		return nil, fmt.Errorf("month cannot be zero")
	}

	sid, err := id.NewMonthlyMetricID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &MonthlyMetric{
		sid:       sid,
		tenantID:  tenantID,
		scope:     scope,
		courseID:  courseID,
		userID:    userID,
		monthFor:  biztime.MonthOf(monthFor),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructMonthlyMetric reconstructs a monthly metric entity from persistence.
func ReconstructMonthlyMetric(
	metricID uint,
	sid string,
	tenantID uint,
	scope Scope,
	courseID string,
	userID uint,
	monthFor time.Time,
	counters Counters,
	monthlyActiveUsers uint,
	percentGrade float64,
	letterGrade string,
	isComplete bool,
	createdAt, updatedAt time.Time,
) (*MonthlyMetric, error) {
	if metricID == 0 {
		return nil, fmt.Errorf("monthly metric ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("monthly metric SID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid monthly metric scope: %s", scope)
	}

	return &MonthlyMetric{
		id:                 metricID,
		sid:                sid,
		tenantID:           tenantID,
		scope:              scope,
		courseID:           courseID,
		userID:             userID,
		monthFor:           monthFor,
		counters:           counters,
		monthlyActiveUsers: monthlyActiveUsers,
		percentGrade:       percentGrade,
		letterGrade:        letterGrade,
		isComplete:         isComplete,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

// ID returns the metric record ID.
func (m *MonthlyMetric) ID() uint {
	return m.id
}

// SID returns the Stripe-style ID.
func (m *MonthlyMetric) SID() string {
	return m.sid
}

// TenantID returns the owning tenant ID.
func (m *MonthlyMetric) TenantID() uint {
	return m.tenantID
}

// Scope returns the metric scope.
func (m *MonthlyMetric) Scope() Scope {
	return m.scope
}

// CourseID returns the course id, or "" for site scope.
func (m *MonthlyMetric) CourseID() string {
	return m.courseID
}

// UserID returns the learner's user id for learner scope, or 0 otherwise.
func (m *MonthlyMetric) UserID() uint {
	return m.userID
}

// MonthFor returns the metric's month, normalized to its first day.
func (m *MonthlyMetric) MonthFor() time.Time {
	return m.monthFor
}

// Counters returns the counter set.
func (m *MonthlyMetric) Counters() Counters {
	return m.counters
}

// MonthlyActiveUsers returns the distinct count of users active on any day
// within the month. Not a sum of daily actives.
func (m *MonthlyMetric) MonthlyActiveUsers() uint {
	return m.monthlyActiveUsers
}

// PercentGrade returns the learner's percent grade (learner scope only).
func (m *MonthlyMetric) PercentGrade() float64 {
	return m.percentGrade
}

// LetterGrade returns the learner's letter grade (learner scope only).
func (m *MonthlyMetric) LetterGrade() string {
	return m.letterGrade
}

// IsComplete reports whether the learner completed the course (learner scope only).
func (m *MonthlyMetric) IsComplete() bool {
	return m.isComplete
}

// CreatedAt returns when the metric record was created.
func (m *MonthlyMetric) CreatedAt() time.Time {
	return m.createdAt
}

// UpdatedAt returns when the metric record was last updated.
func (m *MonthlyMetric) UpdatedAt() time.Time {
	return m.updatedAt
}

// SetCounters replaces the counter set and MAU. Only the rollup calls this,
// on first computation or an explicit overwrite.
func (m *MonthlyMetric) SetCounters(c Counters, monthlyActiveUsers uint) {
	m.counters = c
	m.monthlyActiveUsers = monthlyActiveUsers
	m.updatedAt = biztime.NowUTC()
}

// SetGrade updates the learner-scope grade summary in place.
func (m *MonthlyMetric) SetGrade(percentGrade float64, letterGrade string, isComplete bool) error {
	if m.scope != ScopeLearner {
		return fmt.Errorf("grade summary only applies to learner scope, got %s", m.scope)
	}
	m.percentGrade = percentGrade
	m.letterGrade = letterGrade
	m.isComplete = isComplete
	m.updatedAt = biztime.NowUTC()
	return nil
}

// SetID sets the metric record ID (only for persistence layer use).
func (m *MonthlyMetric) SetID(metricID uint) error {
	if m.id != 0 {
		return fmt.Errorf("monthly metric ID is already set")
	}
	if metricID == 0 {
		return fmt.Errorf("monthly metric ID cannot be zero")
	}
	m.id = metricID
	return nil
}
