// internal/app/coordinator/errors.go
package coordinator

import "fmt"

// DuplicateError reports an attempt to create a user with an email already
// registered (compared case-insensitively after trimming).
type DuplicateError struct {
	Email string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a user with email %s already exists", e.Email)
}

// NotFoundError reports a reference to an id or email the system does not
// hold. Kind is "user" or "task".
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// HasAssignedTasksError blocks deleting a user that still owns tasks unless
// the caller asks for cascading unassignment.
type HasAssignedTasksError struct {
	UserID  string
	TaskIDs []string
}

func (e *HasAssignedTasksError) Error() string {
	return fmt.Sprintf("user %s still owns %d task(s); delete with cascade to unassign them", e.UserID, len(e.TaskIDs))
}
