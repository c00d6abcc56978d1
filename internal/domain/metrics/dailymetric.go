package metrics

import (
	"fmt"
	"time"

	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/id"
)

// Counters is the shared counter set carried by daily and monthly metric
// records. Values are pure functions of the underlying activity and
// enrollment data within the record's window.
type Counters struct {
	ActiveUsers       uint
	ActiveLearners    uint
	RegisteredUsers   uint
	NewUsers          uint
	CourseEnrollments uint
	CourseCompletions uint
	AverageProgress   float64
}

// DailyMetric is a persisted day-granularity metric snapshot, keyed uniquely
// by (tenant, scope, course, date_for). Upsert-only; never deleted.
type DailyMetric struct {
	id        uint
	sid       string // Stripe-style ID: dm_xxx
	tenantID  uint
	scope     Scope
	courseID  string // empty for site scope
	dateFor   time.Time
	counters  Counters
	createdAt time.Time
	updatedAt time.Time
}

// NewDailyMetric creates a new daily metric record for a (scope, date) key.
// dateFor is normalized to the start of its business day.
func NewDailyMetric(tenantID uint, scope Scope, courseID string, dateFor time.Time) (*DailyMetric, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !scope.IsValid() || scope == ScopeLearner {
		return nil, fmt.Errorf("invalid daily metric scope: %s", scope)
	}
	if scope.RequiresCourse() && courseID == "" {
		return nil, fmt.Errorf("course ID is required for course scope")
	}
	if scope == ScopeSite && courseID != "" {
		return nil, fmt.Errorf("course ID must be empty for site scope")
	}
	if dateFor.IsZero() {
		return nil, fmt.Errorf("date cannot be zero")
	}

	sid, err := id.NewDailyMetricID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &DailyMetric{
		sid:       sid,
		tenantID:  tenantID,
		scope:     scope,
		courseID:  courseID,
		dateFor:   biztime.StartOfDayUTC(dateFor),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructDailyMetric reconstructs a daily metric entity from persistence.
func ReconstructDailyMetric(
	metricID uint,
	sid string,
	tenantID uint,
	scope Scope,
	courseID string,
	dateFor time.Time,
	counters Counters,
	createdAt, updatedAt time.Time,
) (*DailyMetric, error) {
	if metricID == 0 {
		return nil, fmt.Errorf("daily metric ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("daily metric SID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid daily metric scope: %s", scope)
	}

	return &DailyMetric{
		id:        metricID,
		sid:       sid,
		tenantID:  tenantID,
		scope:     scope,
		courseID:  courseID,
		dateFor:   dateFor,
		counters:  counters,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the metric record ID.
func (m *DailyMetric) ID() uint {
	return m.id
}

// SID returns the Stripe-style ID.
func (m *DailyMetric) SID() string {
	return m.sid
}

// TenantID returns the owning tenant ID.
func (m *DailyMetric) TenantID() uint {
	return m.tenantID
}

// Scope returns the metric scope (site or course).
func (m *DailyMetric) Scope() Scope {
	return m.scope
}

// CourseID returns the course id for course scope, or "" for site scope.
func (m *DailyMetric) CourseID() string {
	return m.courseID
}

// DateFor returns the metric's day, normalized to the start of its business day.
func (m *DailyMetric) DateFor() time.Time {
	return m.dateFor
}

// Counters returns the counter set.
func (m *DailyMetric) Counters() Counters {
	return m.counters
}

// CreatedAt returns when the metric record was created.
func (m *DailyMetric) CreatedAt() time.Time {
	return m.createdAt
}

// UpdatedAt returns when the metric record was last updated.
func (m *DailyMetric) UpdatedAt() time.Time {
	return m.updatedAt
}

// SetCounters replaces the counter set. Only the aggregator calls this, on
// first computation or an explicit overwrite.
func (m *DailyMetric) SetCounters(c Counters) {
	m.counters = c
	m.updatedAt = biztime.NowUTC()
}

// SetID sets the metric record ID (only for persistence layer use).
func (m *DailyMetric) SetID(metricID uint) error {
	if m.id != 0 {
		return fmt.Errorf("daily metric ID is already set")
	}
	if metricID == 0 {
		return fmt.Errorf("daily metric ID cannot be zero")
	}
	m.id = metricID
	return nil
}

// Validate performs domain-level validation.
func (m *DailyMetric) Validate() error {
	if m.tenantID == 0 {
		return fmt.Errorf("tenant ID is required")
	}
	if !m.scope.IsValid() {
		return fmt.Errorf("invalid scope: %s", m.scope)
	}
	if m.counters.AverageProgress < 0 || m.counters.AverageProgress > 1 {
		return fmt.Errorf("average progress must be within [0, 1]")
	}
	return nil
}
