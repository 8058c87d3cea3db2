// internal/app/coordinator/queries.go
package coordinator

import (
	"math"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.uber.org/zap"

	"github.com/dalemusser/taskhub/internal/domain/models"
)

// SearchTasks returns tasks whose title or description contains term,
// compared case- and diacritic-insensitively. An empty term matches nothing.
func (s *System) SearchTasks(term string) []models.Task {
	folded := text.Fold(term)
	if folded == "" {
		return nil
	}
	var out []models.Task
	for _, id := range s.taskOrder {
		t := s.tasks[id]
		if containsFolded(t.Title, folded) || containsFolded(t.Description, folded) {
			out = append(out, copyTask(t))
		}
	}
	return out
}

func containsFolded(haystack, foldedNeedle string) bool {
	return strings.Contains(text.Fold(haystack), foldedNeedle)
}

// TasksByStatus returns tasks currently in the given status, creation order.
func (s *System) TasksByStatus(status models.Status) []models.Task {
	var out []models.Task
	for _, id := range s.taskOrder {
		if t := s.tasks[id]; t.Status == status {
			out = append(out, copyTask(t))
		}
	}
	return out
}

// TasksDueWithin returns unfinished tasks whose due date falls within the
// next n days.
func (s *System) TasksDueWithin(days int) []models.Task {
	now := time.Now().UTC()
	horizon := now.AddDate(0, 0, days)
	var out []models.Task
	for _, id := range s.taskOrder {
		t := s.tasks[id]
		if t.Status == models.StatusCompleted {
			continue
		}
		if t.DueAt.After(now) && !t.DueAt.After(horizon) {
			out = append(out, copyTask(t))
		}
	}
	return out
}

// Stats summarizes the system for reporting collaborators.
type Stats struct {
	TotalUsers       int
	ActiveUsers      int // users with at least one assigned task
	TotalTasks       int
	Pending          int
	InProgress       int
	Completed        int
	PercentCompleted float64
	Overdue          int
	DueSoon          int // unfinished, due within 3 days
}

// Stats computes current counts over the in-memory state.
func (s *System) Stats() Stats {
	st := Stats{
		TotalUsers: len(s.users),
		TotalTasks: len(s.tasks),
	}
	for _, u := range s.users {
		if len(u.AssignedTaskIDs) > 0 {
			st.ActiveUsers++
		}
	}
	now := time.Now().UTC()
	for _, t := range s.tasks {
		switch t.Status {
		case models.StatusPending:
			st.Pending++
		case models.StatusInProgress:
			st.InProgress++
		case models.StatusCompleted:
			st.Completed++
		}
		if t.Overdue(now) && t.Status != models.StatusCompleted {
			st.Overdue++
		}
	}
	st.DueSoon = len(s.TasksDueWithin(3))
	if st.TotalTasks > 0 {
		st.PercentCompleted = math.Round(float64(st.Completed)/float64(st.TotalTasks)*10000) / 100
	}
	return st
}

// PurgeCompletedBefore deletes completed tasks whose due date is before
// cutoff, returning how many were removed. Used to clear long-finished work
// from the active set.
func (s *System) PurgeCompletedBefore(cutoff time.Time) (int, error) {
	var doomed []string
	for _, id := range s.taskOrder {
		t := s.tasks[id]
		if t.Status == models.StatusCompleted && t.DueAt.Before(cutoff) {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		if err := s.DeleteTask(id); err != nil {
			return 0, err
		}
	}
	if len(doomed) > 0 {
		s.logger.Info("purged old completed tasks", zap.Int("removed", len(doomed)))
	}
	return len(doomed), nil
}
