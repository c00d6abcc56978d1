// Package learning defines the read-only boundary to the learning platform's
// own data stores: raw learner activity, enrollments, certificates, and user
// profiles. Records are immutable snapshots of external rows; the pipeline
// never writes to these stores except for the one-time activity cutover
// migration on user profiles.
package learning

import (
	"context"
	"time"

	"spyglass/internal/shared/query"
)

// ActivityRecord is one unit of recorded learner interaction with course
// content. The source table is append-only; modified_at advances when the
// learner touches the same block again.
type ActivityRecord struct {
	ID         uint
	UserID     uint
	CourseID   string
	State      string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// ActivityRepository queries the raw activity store.
type ActivityRepository interface {
	// ActiveUserIDs returns the distinct user ids with an activity record
	// whose modified_at falls in [from, to), restricted to the given courses.
	ActiveUserIDs(ctx context.Context, courseIDs []string, from, to time.Time, pref query.ReadPreference) ([]uint, error)

	// ActiveUserIDsForCourse is ActiveUserIDs for a single course.
	ActiveUserIDsForCourse(ctx context.Context, courseID string, from, to time.Time, pref query.ReadPreference) ([]uint, error)

	// EarliestCreatedAt returns the created_at of the oldest activity record
	// for the given courses, or nil when no activity exists.
	EarliestCreatedAt(ctx context.Context, courseIDs []string, pref query.ReadPreference) (*time.Time, error)

	// DistinctUserIDs returns every user id with any recorded activity,
	// store-wide. Used by the activity cutover migration.
	DistinctUserIDs(ctx context.Context, pref query.ReadPreference) ([]uint, error)

	// LatestForUser returns the user's most recent activity record by
	// modified_at, or nil when the user has none.
	LatestForUser(ctx context.Context, userID uint, pref query.ReadPreference) (*ActivityRecord, error)
}
