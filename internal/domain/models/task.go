// internal/domain/models/task.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dalemusser/taskhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskhub/internal/app/system/normalize"
)

// Status is a task workflow state. Every state is reachable from every other
// state; transitions are stamped but never rejected.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists all states in presentation order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority ranks a task. It has no scheduling semantics in the core; it is
// carried for reporting.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work, optionally owned by a single User.
//
// DueAt must be strictly after CreatedAt when the task is created; it is not
// re-validated afterward, so persisted tasks may be overdue. OwnerID empty
// means unassigned. CompletedAt is set on entering StatusCompleted and
// cleared on leaving it.
type Task struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	DueAt       time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	Status      Status
	Priority    Priority
	OwnerID     string
}

// TaskRecord is the flat persisted form of a Task.
type TaskRecord struct {
	ID          string  `json:"id" bson:"id"`
	Title       string  `json:"titulo" bson:"titulo"`
	Description string  `json:"descripcion" bson:"descripcion"`
	CreatedAt   string  `json:"fecha_creacion" bson:"fecha_creacion"`
	DueAt       string  `json:"fecha_limite" bson:"fecha_limite"`
	UpdatedAt   string  `json:"fecha_actualizacion" bson:"fecha_actualizacion"`
	CompletedAt *string `json:"fecha_finalizacion" bson:"fecha_finalizacion"`
	Status      string  `json:"estado" bson:"estado"`
	Priority    string  `json:"prioridad" bson:"prioridad"`
	OwnerID     *string `json:"usuario_id" bson:"usuario_id"`
}

// NewTask validates and normalizes its inputs and returns a fully constructed
// pending Task. ownerID may be empty (unassigned); the coordinator verifies
// the owner exists before calling. priority may be empty and defaults to low.
func NewTask(title, description string, due time.Time, ownerID string, priority Priority) (*Task, error) {
	tl := normalize.Title(title)
	if tl == "" {
		return nil, &ValidationError{Field: "titulo", Reason: "must not be empty"}
	}
	if priority == "" {
		priority = PriorityLow
	}
	if !priority.Valid() {
		return nil, &ValidationError{Field: "prioridad", Reason: fmt.Sprintf("unknown priority %q", priority)}
	}
	now := time.Now().UTC()
	if !due.After(now) {
		return nil, &ValidationError{Field: "fecha_limite", Reason: "must be after creation time"}
	}
	return &Task{
		ID:          uuid.NewString(),
		Title:       tl,
		Description: htmlsanitize.Clean(normalize.Description(description)),
		CreatedAt:   now,
		DueAt:       due.UTC(),
		UpdatedAt:   now,
		Status:      StatusPending,
		Priority:    priority,
		OwnerID:     ownerID,
	}, nil
}

// ChangeStatus moves the task to s and stamps the transition. All transitions
// are legal; only an unknown tag is rejected.
func (t *Task) ChangeStatus(s Status) error {
	if !s.Valid() {
		return &ValidationError{Field: "estado", Reason: fmt.Sprintf("unknown status %q", s)}
	}
	now := time.Now().UTC()
	t.Status = s
	t.UpdatedAt = now
	if s == StatusCompleted {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return nil
}

// Reassign points the task at a new owner (empty means unassign) and stamps the
// change. The coordinator keeps the user-side lists in step.
func (t *Task) Reassign(ownerID string) {
	t.OwnerID = ownerID
	t.UpdatedAt = time.Now().UTC()
}

// Overdue reports whether the due date has passed at the given instant.
func (t *Task) Overdue(now time.Time) bool {
	return now.After(t.DueAt)
}

// DaysLeft returns whole days until the due date, negative once overdue.
func (t *Task) DaysLeft(now time.Time) int {
	return int(t.DueAt.Sub(now).Hours() / 24)
}

// Record converts the task to its persisted form.
func (t *Task) Record() TaskRecord {
	r := TaskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339Nano),
		DueAt:       t.DueAt.Format(time.RFC3339Nano),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339Nano),
		Status:      string(t.Status),
		Priority:    string(t.Priority),
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339Nano)
		r.CompletedAt = &s
	}
	if t.OwnerID != "" {
		owner := t.OwnerID
		r.OwnerID = &owner
	}
	return r
}

// TaskFromRecord reconstructs a Task from its persisted form. Records written
// by Record round-trip to an equal entity.
func TaskFromRecord(r TaskRecord) (*Task, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("invalid task on disk: id is empty")
	}
	if r.Title == "" {
		return nil, fmt.Errorf("invalid task on disk: %s has empty titulo", r.ID)
	}
	status := Status(r.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("invalid task on disk: %s: unknown estado %q", r.ID, r.Status)
	}
	priority := Priority(r.Priority)
	if priority == "" {
		priority = PriorityLow
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("invalid task on disk: %s: unknown prioridad %q", r.ID, r.Priority)
	}
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid task on disk: %s: bad fecha_creacion: %w", r.ID, err)
	}
	due, err := time.Parse(time.RFC3339Nano, r.DueAt)
	if err != nil {
		return nil, fmt.Errorf("invalid task on disk: %s: bad fecha_limite: %w", r.ID, err)
	}
	updated := created
	if r.UpdatedAt != "" {
		if updated, err = time.Parse(time.RFC3339Nano, r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("invalid task on disk: %s: bad fecha_actualizacion: %w", r.ID, err)
		}
	}
	task := &Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   created,
		DueAt:       due,
		UpdatedAt:   updated,
		Status:      status,
		Priority:    priority,
	}
	if r.CompletedAt != nil {
		done, err := time.Parse(time.RFC3339Nano, *r.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid task on disk: %s: bad fecha_finalizacion: %w", r.ID, err)
		}
		task.CompletedAt = &done
	}
	if r.OwnerID != nil {
		task.OwnerID = *r.OwnerID
	}
	return task, nil
}
