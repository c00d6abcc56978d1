// Package grades defines the boundary to the grading collaborator. Host
// platform versions expose grades in different shapes; the compat adapter
// normalizes them into one ordered sequence of section scores so the rest of
// the pipeline never inspects platform types.
package grades

import (
	"context"
	"errors"
	"time"
)

// ErrGradeNotFound is returned by an Adapter when the learner has no grade
// record for the course.
var ErrGradeNotFound = errors.New("grade not found for learner and course")

// SectionScore is one graded section's earned/possible points, normalized
// across host platform versions into a stable order.
type SectionScore struct {
	ID       string
	Earned   float64
	Possible float64
}

// CourseGrade is a learner's grade state for one course as reported by the
// grading collaborator. SectionScores is an ordered sequence; the grading
// policy weighting is already applied by the collaborator and is opaque here.
type CourseGrade struct {
	UserID        uint
	CourseID      string
	SectionScores []SectionScore
	PercentGrade  float64
	LetterGrade   string
	PassedAt      *time.Time
}

// Progress returns the learner's fractional course progress in [0.0, 1.0]:
// the sum of earned points over the sum of possible points across all graded
// sections. A learner with no graded attempts has progress 0.0.
func (g *CourseGrade) Progress() float64 {
	var earned, possible float64
	for _, s := range g.SectionScores {
		earned += s.Earned
		possible += s.Possible
	}
	if possible <= 0 {
		return 0.0
	}
	p := earned / possible
	if p < 0 {
		return 0.0
	}
	if p > 1 {
		return 1.0
	}
	return p
}

// IsComplete reports whether the learner finished all graded content.
func (g *CourseGrade) IsComplete() bool {
	return g.Progress() >= 1.0
}

// Adapter is the host-version compatibility boundary to the grading
// collaborator. One implementation exists per supported host platform
// version; the pipeline depends only on this interface.
type Adapter interface {
	// CourseGrade returns the learner's grade for the course, or
	// ErrGradeNotFound when the learner has no grade record.
	CourseGrade(ctx context.Context, userID uint, courseID string) (*CourseGrade, error)
}
