// internal/testutil/fixtures.go
package testutil

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/taskhub/internal/app/coordinator"
	"github.com/dalemusser/taskhub/internal/app/store/backup"
	"github.com/dalemusser/taskhub/internal/app/store/bsonstore"
	"github.com/dalemusser/taskhub/internal/app/store/jsonstore"
	"github.com/dalemusser/taskhub/internal/app/store/layout"
	"github.com/dalemusser/taskhub/internal/app/store/persist"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// NewLayout builds the directory layout under a fresh temp dir.
func NewLayout(t *testing.T) *layout.Layout {
	t.Helper()
	return NewLayoutAt(t, t.TempDir())
}

// NewLayoutAt builds the directory layout rooted at dir.
func NewLayoutAt(t *testing.T, dir string) *layout.Layout {
	t.Helper()
	lay, err := layout.New(dir)
	if err != nil {
		t.Fatalf("layout.New failed: %v", err)
	}
	return lay
}

// NewManager builds a full persistence stack over the given layout.
func NewManager(t *testing.T, lay *layout.Layout) *persist.Manager {
	t.Helper()
	rot := backup.New(lay.BackupDir(), zap.NewNop())
	return persist.New(lay, rot, jsonstore.New(), bsonstore.New(), zap.NewNop())
}

// NewSystem builds a coordinator over dir (temp dir when empty). It returns
// the system and the data dir so tests can restart against the same state.
func NewSystem(t *testing.T, dir string) (*coordinator.System, string) {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	lay, err := layout.New(dir)
	if err != nil {
		t.Fatalf("layout.New failed: %v", err)
	}
	sys, err := coordinator.New(coordinator.Config{BackupRetention: 7 * 24 * time.Hour}, NewManager(t, lay), zap.NewNop())
	if err != nil {
		t.Fatalf("coordinator.New failed: %v", err)
	}
	return sys, dir
}

// SamplePayload returns a payload with one user and three owned tasks, one
// per status.
func SamplePayload(t *testing.T) models.Payload {
	t.Helper()
	u, err := models.NewUser("Ana López", "ana@empresa.com")
	if err != nil {
		t.Fatalf("NewUser failed: %v", err)
	}
	p := models.EmptyPayload()
	statuses := []models.Status{models.StatusPending, models.StatusInProgress, models.StatusCompleted}
	for _, st := range statuses {
		task, err := models.NewTask("Task", "sample", time.Now().Add(7*24*time.Hour), u.ID, models.PriorityMedium)
		if err != nil {
			t.Fatalf("NewTask failed: %v", err)
		}
		if err := task.ChangeStatus(st); err != nil {
			t.Fatalf("ChangeStatus failed: %v", err)
		}
		u.AddTask(task.ID)
		p.Tasks = append(p.Tasks, task.Record())
	}
	p.Users = append(p.Users, u.Record())
	return p
}

// Corrupt truncates a file to half its size, leaving an unparseable stub.
func Corrupt(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0o644); err != nil {
		t.Fatalf("truncate %s: %v", path, err)
	}
}
