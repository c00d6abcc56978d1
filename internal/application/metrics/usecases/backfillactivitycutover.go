package usecases

import (
	"context"
	"fmt"

	"spyglass/internal/domain/learning"
	"spyglass/internal/shared/logger"
	"spyglass/internal/shared/query"
)

// BackfillActivityCutoverUseCase is the one-time migration that seeds the
// denormalized last-course-activity timestamp on user profiles from the raw
// activity store. Safe to re-run: the write is last-write-wins and derived
// from the same source each time.
type BackfillActivityCutoverUseCase struct {
	activityRepo learning.ActivityRepository
	profileRepo  learning.UserProfileRepository
	logger       logger.Interface
}

// NewBackfillActivityCutoverUseCase creates a new activity cutover use case.
func NewBackfillActivityCutoverUseCase(
	activityRepo learning.ActivityRepository,
	profileRepo learning.UserProfileRepository,
	log logger.Interface,
) *BackfillActivityCutoverUseCase {
	return &BackfillActivityCutoverUseCase{
		activityRepo: activityRepo,
		profileRepo:  profileRepo,
		logger:       log,
	}
}

// Execute stamps every user that has recorded activity with the modified_at
// of their most recent record. Returns the number of profiles updated. A
// user whose profile write fails is logged and the sweep continues.
func (uc *BackfillActivityCutoverUseCase) Execute(ctx context.Context) (int, error) {
	userIDs, err := uc.activityRepo.DistinctUserIDs(ctx, query.ReadReplica)
	if err != nil {
		return 0, fmt.Errorf("failed to enumerate users with activity: %w", err)
	}

	updated := 0
	for _, uid := range userIDs {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		latest, err := uc.activityRepo.LatestForUser(ctx, uid, query.ReadReplica)
		if err != nil {
			uc.logger.Warnw("activity cutover could not load latest record",
				"user_id", uid,
				"error", err,
			)
			continue
		}
		if latest == nil {
			continue
		}

		if err := uc.profileRepo.SetLastCourseActivityAt(ctx, uid, latest.ModifiedAt); err != nil {
			uc.logger.Warnw("activity cutover profile write failed",
				"user_id", uid,
				"error", err,
			)
			continue
		}
		updated++
	}

	uc.logger.Infow("activity cutover completed",
		"users_with_activity", len(userIDs),
		"profiles_updated", updated,
	)
	return updated, nil
}
