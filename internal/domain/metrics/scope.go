package metrics

// Scope identifies what a metric record aggregates over.
type Scope string

const (
	// ScopeSite aggregates across every course owned by the tenant.
	ScopeSite Scope = "site"
	// ScopeCourse aggregates a single course.
	ScopeCourse Scope = "course"
	// ScopeLearner tracks a single learner-course pair (grade summaries).
	ScopeLearner Scope = "learner"
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	return string(s)
}

// IsValid checks if the scope value is valid.
func (s Scope) IsValid() bool {
	return s == ScopeSite || s == ScopeCourse || s == ScopeLearner
}

// RequiresCourse reports whether the scope is keyed by a course id.
func (s Scope) RequiresCourse() bool {
	return s == ScopeCourse || s == ScopeLearner
}

// RequiresUser reports whether the scope is keyed by a user id.
func (s Scope) RequiresUser() bool {
	return s == ScopeLearner
}
