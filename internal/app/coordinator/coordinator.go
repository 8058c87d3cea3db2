// internal/app/coordinator/coordinator.go
package coordinator

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/taskhub/internal/app/store/layout"
	"github.com/dalemusser/taskhub/internal/app/store/persist"
	"github.com/dalemusser/taskhub/internal/app/system/normalize"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Config holds coordinator behavior knobs supplied by bootstrap.
type Config struct {
	// Autosave persists both formats after every mutating operation.
	Autosave bool
	// BackupRetention bounds how long pruned snapshots are kept.
	BackupRetention time.Duration
}

// System owns the authoritative in-memory collections of users and tasks and
// keeps them mutually consistent: every task's owner names an existing user,
// and every user's assignment list names only tasks that point back at that
// user. All mutation goes through System; collaborators read copies.
//
// One System instance exclusively owns its data directory. Operations are
// synchronous and single-threaded by design.
type System struct {
	cfg     Config
	persist *persist.Manager
	logger  *zap.Logger

	users     map[string]*models.User
	tasks     map[string]*models.Task
	emails    map[string]string // normalized email -> user id
	userOrder []string          // creation order, drives listings and payloads
	taskOrder []string
}

// New builds a System and loads the most recent valid snapshot from disk. A
// corrupt or missing store is recovered (or degraded to empty) inside the
// persistence layer; only genuine I/O failures abort construction.
func New(cfg Config, pm *persist.Manager, logger *zap.Logger) (*System, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &System{
		cfg:     cfg,
		persist: pm,
		logger:  logger,
	}
	payload, source, err := pm.LoadPreferred()
	if err != nil {
		return nil, err
	}
	if err := s.restore(payload); err != nil {
		return nil, err
	}
	logger.Info("system ready",
		zap.String("source", string(source)),
		zap.Int("users", len(s.users)),
		zap.Int("tasks", len(s.tasks)))
	return s, nil
}

/* ------------------------------- users ------------------------------- */

// CreateUser validates, normalizes, and registers a new user. A duplicate
// email (case-insensitive, trimmed) fails with *DuplicateError and leaves the
// existing user untouched.
func (s *System) CreateUser(name, email string) (models.User, error) {
	u, err := models.NewUser(name, email)
	if err != nil {
		return models.User{}, err
	}
	if _, taken := s.emails[u.Email]; taken {
		return models.User{}, &DuplicateError{Email: u.Email}
	}
	s.users[u.ID] = u
	s.emails[u.Email] = u.ID
	s.userOrder = append(s.userOrder, u.ID)
	s.logger.Info("user created",
		zap.String("user_id", u.ID),
		zap.String("email", u.Email))
	if err := s.autosave(); err != nil {
		return models.User{}, err
	}
	return copyUser(u), nil
}

// UserByID returns a copy of the user with the given id.
func (s *System) UserByID(id string) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, &NotFoundError{Kind: "user", Ref: id}
	}
	return copyUser(u), nil
}

// UserByEmail looks a user up by email, case-insensitively.
func (s *System) UserByEmail(email string) (models.User, error) {
	id, ok := s.emails[normalize.Email(email)]
	if !ok {
		return models.User{}, &NotFoundError{Kind: "user", Ref: email}
	}
	return copyUser(s.users[id]), nil
}

// Users returns copies of all users in creation order.
func (s *System) Users() []models.User {
	out := make([]models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, copyUser(s.users[id]))
	}
	return out
}

// DeleteUser removes a user. Without cascade it fails with
// *HasAssignedTasksError while the user still owns tasks; with cascade every
// owned task is unassigned first, then the user record is removed.
func (s *System) DeleteUser(id string, cascade bool) error {
	u, ok := s.users[id]
	if !ok {
		return &NotFoundError{Kind: "user", Ref: id}
	}
	if len(u.AssignedTaskIDs) > 0 {
		if !cascade {
			return &HasAssignedTasksError{UserID: id, TaskIDs: slices.Clone(u.AssignedTaskIDs)}
		}
		for _, taskID := range slices.Clone(u.AssignedTaskIDs) {
			if t, ok := s.tasks[taskID]; ok && t.OwnerID == id {
				t.Reassign("")
			}
			u.RemoveTask(taskID)
		}
	}
	delete(s.users, id)
	delete(s.emails, u.Email)
	s.userOrder = slices.DeleteFunc(s.userOrder, func(v string) bool { return v == id })
	s.logger.Info("user deleted",
		zap.String("user_id", id),
		zap.Bool("cascade", cascade))
	return s.autosave()
}

/* ------------------------------- tasks ------------------------------- */

// CreateTask validates, normalizes, and registers a new pending task.
// ownerEmail may be empty for an unassigned task; a non-empty owner email
// must resolve to an existing user or the call fails with *NotFoundError and
// creates nothing.
func (s *System) CreateTask(title, description string, due time.Time, ownerEmail string, priority models.Priority) (models.Task, error) {
	ownerID := ""
	if ownerEmail != "" {
		id, ok := s.emails[normalize.Email(ownerEmail)]
		if !ok {
			return models.Task{}, &NotFoundError{Kind: "user", Ref: ownerEmail}
		}
		ownerID = id
	}
	t, err := models.NewTask(title, description, due, ownerID, priority)
	if err != nil {
		return models.Task{}, err
	}
	s.tasks[t.ID] = t
	s.taskOrder = append(s.taskOrder, t.ID)
	if ownerID != "" {
		s.users[ownerID].AddTask(t.ID)
	}
	s.logger.Info("task created",
		zap.String("task_id", t.ID),
		zap.String("title", t.Title),
		zap.String("owner_id", ownerID))
	if err := s.autosave(); err != nil {
		return models.Task{}, err
	}
	return copyTask(t), nil
}

// TaskByID returns a copy of the task with the given id.
func (s *System) TaskByID(id string) (models.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, &NotFoundError{Kind: "task", Ref: id}
	}
	return copyTask(t), nil
}

// Tasks returns copies of all tasks in creation order.
func (s *System) Tasks() []models.Task {
	out := make([]models.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		out = append(out, copyTask(s.tasks[id]))
	}
	return out
}

// AssignTask gives the task to userID, detaching it from any previous owner
// first. Both the task's owner field and the old and new users' assignment
// lists are updated before the call returns; no intermediate state is ever
// observable.
func (s *System) AssignTask(taskID, userID string) error {
	t, ok := s.tasks[taskID]
	if !ok {
		return &NotFoundError{Kind: "task", Ref: taskID}
	}
	u, ok := s.users[userID]
	if !ok {
		return &NotFoundError{Kind: "user", Ref: userID}
	}
	if t.OwnerID == userID {
		return nil
	}
	if prev, ok := s.users[t.OwnerID]; ok {
		prev.RemoveTask(taskID)
	}
	u.AddTask(taskID)
	t.Reassign(userID)
	s.logger.Info("task reassigned",
		zap.String("task_id", taskID),
		zap.String("user_id", userID))
	return s.autosave()
}

// UnassignTask clears the task's owner and removes it from the owner's list.
func (s *System) UnassignTask(taskID string) error {
	t, ok := s.tasks[taskID]
	if !ok {
		return &NotFoundError{Kind: "task", Ref: taskID}
	}
	if t.OwnerID == "" {
		return nil
	}
	if prev, ok := s.users[t.OwnerID]; ok {
		prev.RemoveTask(taskID)
	}
	t.Reassign("")
	return s.autosave()
}

// ChangeStatus moves a task to the given status. Any transition is legal;
// each one is stamped on the task.
func (s *System) ChangeStatus(taskID string, status models.Status) error {
	t, ok := s.tasks[taskID]
	if !ok {
		return &NotFoundError{Kind: "task", Ref: taskID}
	}
	from := t.Status
	if err := t.ChangeStatus(status); err != nil {
		return err
	}
	s.logger.Info("task status changed",
		zap.String("task_id", taskID),
		zap.String("from", string(from)),
		zap.String("to", string(status)))
	return s.autosave()
}

// DeleteTask removes a task and detaches it from its owner's list, if any.
func (s *System) DeleteTask(id string) error {
	t, ok := s.tasks[id]
	if !ok {
		return &NotFoundError{Kind: "task", Ref: id}
	}
	if owner, ok := s.users[t.OwnerID]; ok {
		owner.RemoveTask(id)
	}
	delete(s.tasks, id)
	s.taskOrder = slices.DeleteFunc(s.taskOrder, func(v string) bool { return v == id })
	s.logger.Info("task deleted", zap.String("task_id", id))
	return s.autosave()
}

/* ----------------------------- persistence ----------------------------- */

// Save writes the full in-memory state to both on-disk formats and rotates
// backups. A *persist.PartialSaveError passes through to the caller.
func (s *System) Save() error {
	return s.persist.SaveAll(s.payload())
}

// Load re-reads the preferred snapshot from disk, replacing the in-memory
// state. Outside of construction this only happens on explicit request; the
// in-memory state is the single source of truth during a run.
func (s *System) Load() error {
	payload, source, err := s.persist.LoadPreferred()
	if err != nil {
		return err
	}
	if err := s.restore(payload); err != nil {
		return err
	}
	s.logger.Info("state reloaded",
		zap.String("source", string(source)),
		zap.Int("users", len(s.users)),
		zap.Int("tasks", len(s.tasks)))
	return nil
}

// PruneBackups removes backup snapshots older than the configured retention.
func (s *System) PruneBackups() (int, error) {
	return s.persist.PruneOldBackups(s.cfg.BackupRetention)
}

// StorageStats reports file counts and sizes under the data directory.
func (s *System) StorageStats() (layout.Stats, error) {
	return s.persist.StorageStats()
}

func (s *System) payload() models.Payload {
	p := models.EmptyPayload()
	for _, id := range s.userOrder {
		p.Users = append(p.Users, s.users[id].Record())
	}
	for _, id := range s.taskOrder {
		p.Tasks = append(p.Tasks, s.tasks[id].Record())
	}
	return p
}

// restore replaces the in-memory collections with the payload's contents and
// repairs the user/task relation: the task side is authoritative, dangling
// references are dropped with a warning.
func (s *System) restore(p models.Payload) error {
	users := make(map[string]*models.User, len(p.Users))
	tasks := make(map[string]*models.Task, len(p.Tasks))
	emails := make(map[string]string, len(p.Users))
	userOrder := make([]string, 0, len(p.Users))
	taskOrder := make([]string, 0, len(p.Tasks))

	for _, r := range p.Users {
		u, err := models.UserFromRecord(r)
		if err != nil {
			return err
		}
		users[u.ID] = u
		emails[u.Email] = u.ID
		userOrder = append(userOrder, u.ID)
	}
	for _, r := range p.Tasks {
		t, err := models.TaskFromRecord(r)
		if err != nil {
			return err
		}
		if t.OwnerID != "" {
			if _, ok := users[t.OwnerID]; !ok {
				s.logger.Warn("task owner missing on disk; unassigning",
					zap.String("task_id", t.ID),
					zap.String("owner_id", t.OwnerID))
				t.OwnerID = ""
			}
		}
		tasks[t.ID] = t
		taskOrder = append(taskOrder, t.ID)
	}

	// Reconcile assignment lists against task ownership.
	for _, u := range users {
		kept := u.AssignedTaskIDs[:0]
		for _, taskID := range u.AssignedTaskIDs {
			if t, ok := tasks[taskID]; ok && t.OwnerID == u.ID {
				kept = append(kept, taskID)
				continue
			}
			s.logger.Warn("dropping stale assignment on disk",
				zap.String("user_id", u.ID),
				zap.String("task_id", taskID))
		}
		u.AssignedTaskIDs = kept
	}
	for _, id := range taskOrder {
		t := tasks[id]
		if t.OwnerID != "" {
			users[t.OwnerID].AddTask(t.ID)
		}
	}

	s.users = users
	s.tasks = tasks
	s.emails = emails
	s.userOrder = userOrder
	s.taskOrder = taskOrder
	return nil
}

func (s *System) autosave() error {
	if !s.cfg.Autosave {
		return nil
	}
	return s.Save()
}

func copyUser(u *models.User) models.User {
	out := *u
	out.AssignedTaskIDs = slices.Clone(u.AssignedTaskIDs)
	return out
}

func copyTask(t *models.Task) models.Task {
	out := *t
	if t.CompletedAt != nil {
		done := *t.CompletedAt
		out.CompletedAt = &done
	}
	return out
}
