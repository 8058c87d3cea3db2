// internal/app/store/persist/persist.go
package persist

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/taskhub/internal/app/store"
	"github.com/dalemusser/taskhub/internal/app/store/backup"
	"github.com/dalemusser/taskhub/internal/app/store/layout"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Source says where a loaded payload came from.
type Source string

const (
	SourceJSON   Source = "json"
	SourceBinary Source = "binario"
	SourceBackup Source = "backup"
	// SourceEmpty marks a degraded start: every store and backup was corrupt
	// or absent and the system came up with zero data.
	SourceEmpty Source = "empty"
)

// PartialSaveError reports that the readable store saved but the compact
// store did not. The two on-disk formats are inconsistent until the next
// successful SaveAll.
type PartialSaveError struct {
	Kind store.Kind
	Err  error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("partial save: %s store failed after readable save succeeded: %v", e.Kind, e.Err)
}

func (e *PartialSaveError) Unwrap() error { return e.Err }

// Manager unifies the two format stores and the backup rotator behind one
// save/load contract. It holds no payload state between calls; it is pure
// translation and I/O driven by the coordinator.
type Manager struct {
	layout   *layout.Layout
	rotator  *backup.Rotator
	readable store.Store
	compact  store.Store
	logger   *zap.Logger
}

func New(lay *layout.Layout, rot *backup.Rotator, readable, compact store.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		layout:   lay,
		rotator:  rot,
		readable: readable,
		compact:  compact,
		logger:   logger,
	}
}

// SaveAll writes the payload to both formats, readable first, snapshotting
// each committed file before overwriting it. The readable sequence completes
// (success or failure) before the compact sequence begins. A compact failure
// after a readable success returns *PartialSaveError; callers decide whether
// that is fatal.
func (m *Manager) SaveAll(payload models.Payload) error {
	if err := m.saveOne(m.readable, payload); err != nil {
		return fmt.Errorf("save %s store: %w", m.readable.Kind(), err)
	}
	if err := m.saveOne(m.compact, payload); err != nil {
		m.logger.Error("compact store save failed; formats now inconsistent on disk",
			zap.String("kind", string(m.compact.Kind())),
			zap.Error(err))
		return &PartialSaveError{Kind: m.compact.Kind(), Err: err}
	}
	return nil
}

func (m *Manager) saveOne(st store.Store, payload models.Payload) error {
	path := m.layout.DataFile(st.Kind())
	id, err := m.rotator.Snapshot(st.Kind(), path)
	if err != nil {
		return fmt.Errorf("snapshot before overwrite: %w", err)
	}
	if id != "" {
		m.logger.Debug("rotated backup before save",
			zap.String("kind", string(st.Kind())),
			zap.String("snapshot", id))
	}
	return st.Save(payload, path)
}

// LoadPreferred returns the most recent valid payload, trying the readable
// store, then the compact store, then the newest backup snapshot (readable
// kind preferred), and finally an empty payload. Corruption along the chain
// is a recovered condition, logged but not returned; only genuine I/O
// failures (permissions and the like) surface as errors.
func (m *Manager) LoadPreferred() (models.Payload, Source, error) {
	payload, err := m.readable.Load(m.layout.JSONFile())
	if err == nil {
		return payload, SourceJSON, nil
	}
	if !isCorrupt(err) {
		return models.Payload{}, "", err
	}
	m.logger.Warn("readable store corrupt, falling back to compact store",
		zap.String("path", m.layout.JSONFile()),
		zap.Error(err))

	payload, err = m.compact.Load(m.layout.BinaryFile())
	if err == nil {
		m.logger.Info("recovered from compact store",
			zap.String("path", m.layout.BinaryFile()))
		return payload, SourceBinary, nil
	}
	if !isCorrupt(err) {
		return models.Payload{}, "", err
	}
	m.logger.Warn("compact store corrupt, falling back to backups",
		zap.String("path", m.layout.BinaryFile()),
		zap.Error(err))

	for _, st := range []store.Store{m.readable, m.compact} {
		path, err := m.rotator.Latest(st.Kind())
		if err != nil {
			return models.Payload{}, "", err
		}
		if path == "" {
			continue
		}
		payload, err = st.Load(path)
		if err == nil {
			m.logger.Info("recovered from backup snapshot",
				zap.String("kind", string(st.Kind())),
				zap.String("path", path))
			return payload, SourceBackup, nil
		}
		if !isCorrupt(err) {
			return models.Payload{}, "", err
		}
		m.logger.Warn("backup snapshot corrupt",
			zap.String("path", path),
			zap.Error(err))
	}

	m.logger.Error("all stores and backups exhausted; starting with empty state")
	return models.EmptyPayload(), SourceEmpty, nil
}

// PruneOldBackups removes snapshots older than retention, keeping at least
// the newest snapshot of each store kind.
func (m *Manager) PruneOldBackups(retention time.Duration) (int, error) {
	return m.rotator.Prune(retention)
}

// StorageStats reports what the data directory currently holds on disk.
func (m *Manager) StorageStats() (layout.Stats, error) {
	return m.layout.StorageStats()
}

func isCorrupt(err error) bool {
	var ce *store.CorruptError
	return errors.As(err, &ce)
}
