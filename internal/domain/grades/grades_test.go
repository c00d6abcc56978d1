package grades

import (
	"testing"
)

func TestCourseGrade_Progress(t *testing.T) {
	tests := []struct {
		name   string
		scores []SectionScore
		want   float64
	}{
		{
			name:   "no graded attempts",
			scores: nil,
			want:   0.0,
		},
		{
			name: "zero possible points",
			scores: []SectionScore{
				{ID: "s1", Earned: 0, Possible: 0},
			},
			want: 0.0,
		},
		{
			name: "half complete",
			scores: []SectionScore{
				{ID: "s1", Earned: 5, Possible: 10},
				{ID: "s2", Earned: 0, Possible: 0},
			},
			want: 0.5,
		},
		{
			name: "sums across sections",
			scores: []SectionScore{
				{ID: "s1", Earned: 3, Possible: 4},
				{ID: "s2", Earned: 1, Possible: 4},
			},
			want: 0.5,
		},
		{
			name: "fully complete",
			scores: []SectionScore{
				{ID: "s1", Earned: 10, Possible: 10},
			},
			want: 1.0,
		},
		{
			name: "clamped above one",
			scores: []SectionScore{
				{ID: "s1", Earned: 12, Possible: 10},
			},
			want: 1.0,
		},
		{
			name: "clamped below zero",
			scores: []SectionScore{
				{ID: "s1", Earned: -5, Possible: 10},
			},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &CourseGrade{UserID: 1, CourseID: "course-1", SectionScores: tt.scores}
			if got := g.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCourseGrade_IsComplete(t *testing.T) {
	complete := &CourseGrade{SectionScores: []SectionScore{{Earned: 10, Possible: 10}}}
	if !complete.IsComplete() {
		t.Error("IsComplete() = false for full progress, want true")
	}

	partial := &CourseGrade{SectionScores: []SectionScore{{Earned: 9, Possible: 10}}}
	if partial.IsComplete() {
		t.Error("IsComplete() = true for partial progress, want false")
	}

	empty := &CourseGrade{}
	if empty.IsComplete() {
		t.Error("IsComplete() = true for no attempts, want false")
	}
}
