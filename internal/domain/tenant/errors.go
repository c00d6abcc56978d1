package tenant

import (
	"errors"
	"fmt"
)

// InvariantViolationError is raised when the organization/tenant mapping
// breaks a structural invariant: a course mapped to more than one
// organization, or an organization mapped to more than one tenant.
// A course mapped to no organization is an expected outcome and is
// represented by a nil tenant, never by this error.
type InvariantViolationError struct {
	Resource string
	Key      string
	Detail   string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation on %s %q: %s", e.Resource, e.Key, e.Detail)
}

// NewCourseOrgInvariant reports a course mapped to more than one organization.
func NewCourseOrgInvariant(courseID string, orgCount int) *InvariantViolationError {
	return &InvariantViolationError{
		Resource: "course",
		Key:      courseID,
		Detail:   fmt.Sprintf("mapped to %d organizations, expected exactly 1", orgCount),
	}
}

// IsInvariantViolation checks if the error is an InvariantViolationError.
func IsInvariantViolation(err error) bool {
	var inv *InvariantViolationError
	return errors.As(err, &inv)
}
