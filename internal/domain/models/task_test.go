// internal/domain/models/task_test.go
package models

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	due := time.Now().UTC().Add(48 * time.Hour)
	task, err := NewTask("  design   review ", "  check <b>the mockups</b>  ", due, "u1", "")
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	if task.Title != "Design Review" {
		t.Errorf("Title = %q, want %q", task.Title, "Design Review")
	}
	if task.Description != "check the mockups" {
		t.Errorf("Description = %q, want %q", task.Description, "the mockups")
	}
	if task.Status != StatusPending {
		t.Errorf("Status = %q, want %q", task.Status, StatusPending)
	}
	if task.Priority != PriorityLow {
		t.Errorf("Priority = %q, want %q (default)", task.Priority, PriorityLow)
	}
	if task.OwnerID != "u1" {
		t.Errorf("OwnerID = %q, want %q", task.OwnerID, "u1")
	}
	if !task.UpdatedAt.Equal(task.CreatedAt) {
		t.Error("UpdatedAt != CreatedAt on a fresh task")
	}
	if task.CompletedAt != nil {
		t.Error("CompletedAt set on a fresh task")
	}
}

func TestNewTaskValidation(t *testing.T) {
	future := time.Now().Add(time.Hour)
	tests := []struct {
		name      string
		title     string
		due       time.Time
		priority  Priority
		wantField string
	}{
		{"empty title", "", future, PriorityLow, "titulo"},
		{"whitespace title", "   ", future, PriorityLow, "titulo"},
		{"due in the past", "Task", time.Now().Add(-time.Minute), PriorityLow, "fecha_limite"},
		{"due right now", "Task", time.Now().Add(-time.Nanosecond), PriorityLow, "fecha_limite"},
		{"unknown priority", "Task", future, Priority("urgent"), "prioridad"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask(tc.title, "", tc.due, "", tc.priority)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tc.wantField)
			}
		})
	}
}

func TestChangeStatusStampsTransitions(t *testing.T) {
	task, err := NewTask("Task", "", time.Now().Add(time.Hour), "", PriorityLow)
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}

	if err := task.ChangeStatus(StatusCompleted); err != nil {
		t.Fatalf("ChangeStatus(completed) failed: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("CompletedAt not set on completion")
	}
	if !task.UpdatedAt.Equal(*task.CompletedAt) {
		t.Error("UpdatedAt != CompletedAt after completion")
	}

	// Any transition is legal, including reopening a completed task.
	if err := task.ChangeStatus(StatusPending); err != nil {
		t.Fatalf("ChangeStatus(pending) failed: %v", err)
	}
	if task.CompletedAt != nil {
		t.Error("CompletedAt not cleared on reopen")
	}

	if err := task.ChangeStatus(Status("done")); err == nil {
		t.Error("ChangeStatus(done) succeeded, want error")
	}
}

func TestTaskOverdueAndDaysLeft(t *testing.T) {
	task, err := NewTask("Task", "", time.Now().Add(72*time.Hour+time.Minute), "", PriorityLow)
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	now := time.Now()
	if task.Overdue(now) {
		t.Error("Overdue = true before the due date")
	}
	if got := task.DaysLeft(now); got != 3 {
		t.Errorf("DaysLeft = %d, want 3", got)
	}
	after := task.DueAt.Add(time.Second)
	if !task.Overdue(after) {
		t.Error("Overdue = false after the due date")
	}
}

func TestTaskRecordRoundTrip(t *testing.T) {
	for _, status := range Statuses {
		t.Run(string(status), func(t *testing.T) {
			task, err := NewTask("Design Ui", "sample", time.Now().Add(time.Hour), "u1", PriorityHigh)
			if err != nil {
				t.Fatalf("NewTask failed: %v", err)
			}
			if err := task.ChangeStatus(status); err != nil {
				t.Fatalf("ChangeStatus failed: %v", err)
			}
			got, err := TaskFromRecord(task.Record())
			if err != nil {
				t.Fatalf("TaskFromRecord failed: %v", err)
			}
			if !reflect.DeepEqual(got, task) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, task)
			}
		})
	}
}

func TestTaskRecordUnassignedOwnerIsNull(t *testing.T) {
	task, err := NewTask("Task", "", time.Now().Add(time.Hour), "", PriorityLow)
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	r := task.Record()
	if r.OwnerID != nil {
		t.Errorf("OwnerID = %v, want nil for an unassigned task", *r.OwnerID)
	}
	got, err := TaskFromRecord(r)
	if err != nil {
		t.Fatalf("TaskFromRecord failed: %v", err)
	}
	if got.OwnerID != "" {
		t.Errorf("OwnerID = %q, want empty", got.OwnerID)
	}
}

func TestTaskFromRecordRejectsBadData(t *testing.T) {
	valid := TaskRecord{
		ID:        "t1",
		Title:     "Task",
		CreatedAt: "2026-08-30T10:00:00Z",
		DueAt:     "2026-09-01T10:00:00Z",
		Status:    "pending",
		Priority:  "low",
	}
	tests := []struct {
		name   string
		mutate func(*TaskRecord)
	}{
		{"empty id", func(r *TaskRecord) { r.ID = "" }},
		{"empty title", func(r *TaskRecord) { r.Title = "" }},
		{"unknown status", func(r *TaskRecord) { r.Status = "done" }},
		{"unknown priority", func(r *TaskRecord) { r.Priority = "urgent" }},
		{"bad created date", func(r *TaskRecord) { r.CreatedAt = "yesterday" }},
		{"bad due date", func(r *TaskRecord) { r.DueAt = "mañana" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			if _, err := TaskFromRecord(r); err == nil {
				t.Error("TaskFromRecord succeeded, want error")
			}
		})
	}
}

func TestTaskFromRecordDefaults(t *testing.T) {
	got, err := TaskFromRecord(TaskRecord{
		ID:        "t1",
		Title:     "Task",
		CreatedAt: "2026-08-30T10:00:00Z",
		DueAt:     "2026-09-01T10:00:00Z",
		Status:    "pending",
	})
	if err != nil {
		t.Fatalf("TaskFromRecord failed: %v", err)
	}
	if got.Priority != PriorityLow {
		t.Errorf("Priority = %q, want %q", got.Priority, PriorityLow)
	}
	if !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Error("UpdatedAt did not default to CreatedAt")
	}
}
