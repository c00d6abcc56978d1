package metrics

import (
	"testing"
)

func TestScope_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
		want  bool
	}{
		{"site scope", ScopeSite, true},
		{"course scope", ScopeCourse, true},
		{"learner scope", ScopeLearner, true},
		{"empty scope", Scope(""), false},
		{"unknown scope", Scope("global"), false},
		{"uppercase", Scope("SITE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.IsValid(); got != tt.want {
				t.Errorf("Scope(%q).IsValid() = %v, want %v", tt.scope, got, tt.want)
			}
		})
	}
}

func TestScope_RequiresCourse(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
		want  bool
	}{
		{"site scope", ScopeSite, false},
		{"course scope", ScopeCourse, true},
		{"learner scope", ScopeLearner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.RequiresCourse(); got != tt.want {
				t.Errorf("Scope(%q).RequiresCourse() = %v, want %v", tt.scope, got, tt.want)
			}
		})
	}
}

func TestScope_RequiresUser(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
		want  bool
	}{
		{"site scope", ScopeSite, false},
		{"course scope", ScopeCourse, false},
		{"learner scope", ScopeLearner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.RequiresUser(); got != tt.want {
				t.Errorf("Scope(%q).RequiresUser() = %v, want %v", tt.scope, got, tt.want)
			}
		})
	}
}

func TestScope_String(t *testing.T) {
	if ScopeSite.String() != "site" {
		t.Errorf("ScopeSite.String() = %q, want %q", ScopeSite.String(), "site")
	}
	if ScopeCourse.String() != "course" {
		t.Errorf("ScopeCourse.String() = %q, want %q", ScopeCourse.String(), "course")
	}
	if ScopeLearner.String() != "learner" {
		t.Errorf("ScopeLearner.String() = %q, want %q", ScopeLearner.String(), "learner")
	}
}
