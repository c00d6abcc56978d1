package metrics

import (
	"context"
	"time"
)

// DailyMetricRepository persists daily metric snapshots. A (tenant, scope,
// course, date) key has at most one live record; Upsert relies on the unique
// key so that concurrent writers for the same key serialize at the store
// while unrelated keys proceed in parallel.
type DailyMetricRepository interface {
	// FindByKey retrieves the record for a metric key. Returns (nil, nil)
	// when absent.
	FindByKey(ctx context.Context, tenantID uint, scope Scope, courseID string, dateFor time.Time) (*DailyMetric, error)

	// Upsert inserts the record or replaces the counters of the existing
	// record with the same key.
	Upsert(ctx context.Context, m *DailyMetric) error
}

// MonthlyMetricRepository persists monthly metric snapshots.
type MonthlyMetricRepository interface {
	// FindByKey retrieves the record for a metric key. userID is 0 except
	// for learner scope. Returns (nil, nil) when absent.
	FindByKey(ctx context.Context, tenantID uint, scope Scope, courseID string, userID uint, monthFor time.Time) (*MonthlyMetric, error)

	// FindLatestForLearner returns the most recent learner-scope record for
	// a (user, course) pair, or (nil, nil) when none exists.
	FindLatestForLearner(ctx context.Context, tenantID, userID uint, courseID string) (*MonthlyMetric, error)

	// Upsert inserts the record or replaces the counters of the existing
	// record with the same key.
	Upsert(ctx context.Context, m *MonthlyMetric) error
}

// EnrollmentDataRepository persists denormalized enrollment snapshots.
type EnrollmentDataRepository interface {
	// FindByKey retrieves the snapshot for (tenant, user, course).
	// Returns (nil, nil) when absent.
	FindByKey(ctx context.Context, tenantID, userID uint, courseID string) (*EnrollmentData, error)

	// Upsert inserts the snapshot or refreshes the existing record with the
	// same key.
	Upsert(ctx context.Context, e *EnrollmentData) error
}
