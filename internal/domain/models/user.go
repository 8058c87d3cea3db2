// internal/domain/models/user.go
package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dalemusser/taskhub/internal/app/system/inputval"
	"github.com/dalemusser/taskhub/internal/app/system/normalize"
)

// User is a person tasks can be assigned to.
//
// ID and RegisteredAt are set once at creation and never change. Email is
// stored normalized (trimmed, lowercase) and is unique across a running
// system; the coordinator enforces uniqueness. AssignedTaskIDs is kept in
// assignment order and mirrors Task.OwnerID at all times.
type User struct {
	ID              string
	Name            string
	Email           string
	RegisteredAt    time.Time
	AssignedTaskIDs []string
}

// UserRecord is the flat persisted form of a User. Dates travel as RFC 3339
// strings so both on-disk formats share one logical layout.
type UserRecord struct {
	ID            string   `json:"id" bson:"id"`
	Name          string   `json:"nombre" bson:"nombre"`
	Email         string   `json:"email" bson:"email"`
	RegisteredAt  string   `json:"fecha_registro" bson:"fecha_registro"`
	AssignedTasks []string `json:"tareas_asignadas" bson:"tareas_asignadas"`
}

// NewUser validates and normalizes its inputs and returns a fully constructed
// User. On any violated invariant it returns a *ValidationError and no entity.
func NewUser(name, email string) (*User, error) {
	n := normalize.Name(name)
	if n == "" {
		return nil, &ValidationError{Field: "nombre", Reason: "must not be empty"}
	}
	e := normalize.Email(email)
	if e == "" {
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if !inputval.IsValidEmail(e) {
		return nil, &ValidationError{Field: "email", Reason: "not a valid address"}
	}
	return &User{
		ID:              uuid.NewString(),
		Name:            n,
		Email:           e,
		RegisteredAt:    time.Now().UTC(),
		AssignedTaskIDs: []string{},
	}, nil
}

// AddTask appends a task id to the user's assignment list. It reports whether
// the list changed; adding an already-listed id is a no-op.
func (u *User) AddTask(taskID string) bool {
	if taskID == "" || slices.Contains(u.AssignedTaskIDs, taskID) {
		return false
	}
	u.AssignedTaskIDs = append(u.AssignedTaskIDs, taskID)
	return true
}

// RemoveTask removes a task id from the assignment list, reporting whether it
// was present.
func (u *User) RemoveTask(taskID string) bool {
	i := slices.Index(u.AssignedTaskIDs, taskID)
	if i < 0 {
		return false
	}
	u.AssignedTaskIDs = slices.Delete(u.AssignedTaskIDs, i, i+1)
	return true
}

// Record converts the user to its persisted form.
func (u *User) Record() UserRecord {
	return UserRecord{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		RegisteredAt:  u.RegisteredAt.Format(time.RFC3339Nano),
		AssignedTasks: slices.Clone(u.AssignedTaskIDs),
	}
}

// UserFromRecord reconstructs a User from its persisted form. Records written
// by Record round-trip to an equal entity.
func UserFromRecord(r UserRecord) (*User, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("invalid user on disk: id is empty")
	}
	if r.Name == "" || r.Email == "" {
		return nil, fmt.Errorf("invalid user on disk: %s has empty nombre or email", r.ID)
	}
	registered, err := time.Parse(time.RFC3339Nano, r.RegisteredAt)
	if err != nil {
		return nil, fmt.Errorf("invalid user on disk: %s: bad fecha_registro: %w", r.ID, err)
	}
	assigned := slices.Clone(r.AssignedTasks)
	if assigned == nil {
		assigned = []string{}
	}
	return &User{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		RegisteredAt:    registered,
		AssignedTaskIDs: assigned,
	}, nil
}
