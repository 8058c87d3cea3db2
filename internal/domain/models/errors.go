// internal/domain/models/errors.go
package models

import "fmt"

// ValidationError reports a rejected input field on entity creation or
// mutation. Field names follow the persisted (Spanish) field keys so that an
// operator can relate the message to the stored record.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
