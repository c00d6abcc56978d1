package grading

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"spyglass/internal/domain/grades"
	"spyglass/internal/infrastructure/persistence/models"
	"spyglass/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (nopLogger) Fatal(msg string, args ...any)                   {}
func (n nopLogger) With(args ...any) logger.Interface             { return n }
func (n nopLogger) Named(name string) logger.Interface            { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func setupGradeDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.SubsectionGradeModel{},
		&models.CourseGradeModel{},
	)
	require.NoError(t, err)

	return db
}

func TestSubsectionAdapter_CourseGrade(t *testing.T) {
	db := setupGradeDB(t)
	adapter := NewSubsectionAdapter(db, nopLogger{})
	ctx := context.Background()

	rows := []*models.SubsectionGradeModel{
		{UserID: 42, CourseID: "course-1", UsageKey: "block-b", Earned: 3, Possible: 4},
		{UserID: 42, CourseID: "course-1", UsageKey: "block-a", Earned: 1, Possible: 4},
		{UserID: 42, CourseID: "course-2", UsageKey: "block-a", Earned: 4, Possible: 4},
		{UserID: 7, CourseID: "course-1", UsageKey: "block-a", Earned: 0, Possible: 4},
	}
	require.NoError(t, db.Create(&rows).Error)

	t.Run("assembles grade from matching rows only", func(t *testing.T) {
		grade, err := adapter.CourseGrade(ctx, 42, "course-1")
		require.NoError(t, err)
		require.Len(t, grade.SectionScores, 2)
		assert.Equal(t, "block-a", grade.SectionScores[0].ID)
		assert.Equal(t, "block-b", grade.SectionScores[1].ID)
		assert.InDelta(t, 0.5, grade.PercentGrade, 1e-9)
	})

	t.Run("no rows means no grade", func(t *testing.T) {
		_, err := adapter.CourseGrade(ctx, 42, "course-404")
		assert.True(t, errors.Is(err, grades.ErrGradeNotFound))
	})
}

func TestLegacyAdapter_CourseGrade(t *testing.T) {
	db := setupGradeDB(t)
	adapter := NewLegacyAdapter(db, nopLogger{})
	ctx := context.Background()

	passedAt := time.Date(2023, 1, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.CourseGradeModel{
		UserID:        42,
		CourseID:      "course-1",
		ChapterGrades: datatypes.JSON(`[{"chapter_id":"ch-1","earned":8,"possible":10},{"chapter_id":"ch-2","earned":6,"possible":10}]`),
		PercentGrade:  0.7,
		LetterGrade:   "B",
		PassedAt:      &passedAt,
	}).Error)

	t.Run("decodes chapter scores and stored grade", func(t *testing.T) {
		grade, err := adapter.CourseGrade(ctx, 42, "course-1")
		require.NoError(t, err)
		require.Len(t, grade.SectionScores, 2)
		assert.Equal(t, "ch-1", grade.SectionScores[0].ID)
		assert.InDelta(t, 0.7, grade.PercentGrade, 1e-9)
		assert.Equal(t, "B", grade.LetterGrade)
		require.NotNil(t, grade.PassedAt)
		assert.True(t, grade.PassedAt.Equal(passedAt))
	})

	t.Run("missing row means no grade", func(t *testing.T) {
		_, err := adapter.CourseGrade(ctx, 7, "course-1")
		assert.True(t, errors.Is(err, grades.ErrGradeNotFound))
	})
}
