// internal/app/store/backup/rotator.go
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/taskhub/internal/app/store"
)

// Timestamp embedded in snapshot names, sortable and second-resolution.
const stampLayout = "20060102_150405"

// Rotator snapshots a store's committed file into the backups directory
// before every overwrite and prunes old snapshots. Snapshot names embed the
// store kind and a timestamp: <kind>_<YYYYMMDD_HHMMSS>[_n].<ext>, where _n
// disambiguates collisions within the same second.
type Rotator struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

func New(dir string, logger *zap.Logger) *Rotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rotator{dir: dir, logger: logger, now: time.Now}
}

// Snapshot copies the file at path into the backups directory. It returns the
// snapshot's base name as its id, or an empty id with no error when the
// source file does not yet exist.
func (r *Rotator) Snapshot(kind store.Kind, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	stamp := r.now().Format(stampLayout)
	name := fmt.Sprintf("%s_%s%s", kind, stamp, kind.Ext())
	for n := 1; r.exists(name); n++ {
		name = fmt.Sprintf("%s_%s_%d%s", kind, stamp, n, kind.Ext())
	}

	dst := filepath.Join(r.dir, name)
	if err := store.WriteFileAtomic(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", dst, err)
	}
	r.logger.Debug("snapshot created",
		zap.String("kind", string(kind)),
		zap.String("snapshot", name))
	return name, nil
}

func (r *Rotator) exists(name string) bool {
	_, err := os.Stat(filepath.Join(r.dir, name))
	return err == nil
}

// Latest returns the path of the newest snapshot for a kind, or an empty
// string when the kind has no snapshots.
func (r *Rotator) Latest(kind store.Kind) (string, error) {
	snaps, err := r.list()
	if err != nil {
		return "", err
	}
	for i := len(snaps) - 1; i >= 0; i-- {
		if snaps[i].kind == kind {
			return filepath.Join(r.dir, snaps[i].name), nil
		}
	}
	return "", nil
}

// Prune deletes snapshots whose embedded timestamp is older than retention,
// returning how many were removed. The newest snapshot of each store kind is
// always kept, even when it falls outside the retention window, so a
// long-idle system never prunes itself down to zero backups. Files that do
// not match the snapshot naming pattern are ignored.
func (r *Rotator) Prune(retention time.Duration) (int, error) {
	snaps, err := r.list()
	if err != nil {
		return 0, err
	}

	// Last (newest) snapshot per kind survives unconditionally.
	keep := map[store.Kind]string{}
	for _, s := range snaps {
		keep[s.kind] = s.name
	}

	cutoff := r.now().Add(-retention)
	removed := 0
	for _, s := range snaps {
		if s.name == keep[s.kind] || !s.stamp.Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(r.dir, s.name)); err != nil {
			return removed, fmt.Errorf("remove snapshot %s: %w", s.name, err)
		}
		removed++
	}
	if removed > 0 {
		r.logger.Info("pruned old backups",
			zap.Int("removed", removed),
			zap.Duration("retention", retention))
	}
	return removed, nil
}

type snapshot struct {
	name  string
	kind  store.Kind
	stamp time.Time
}

// list returns parseable snapshots sorted oldest to newest. Same-second
// snapshots order by name, which puts _n suffixes after the bare stamp.
func (r *Rotator) list() ([]snapshot, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	snaps := make([]snapshot, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		s, ok := parseSnapshotName(e.Name())
		if !ok {
			continue
		}
		snaps = append(snaps, s)
	}
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].stamp.Equal(snaps[j].stamp) {
			return snaps[i].stamp.Before(snaps[j].stamp)
		}
		return snaps[i].name < snaps[j].name
	})
	return snaps, nil
}

func parseSnapshotName(name string) (snapshot, bool) {
	var kind store.Kind
	switch {
	case strings.HasPrefix(name, string(store.KindJSON)+"_") && strings.HasSuffix(name, store.KindJSON.Ext()):
		kind = store.KindJSON
	case strings.HasPrefix(name, string(store.KindBinary)+"_") && strings.HasSuffix(name, store.KindBinary.Ext()):
		kind = store.KindBinary
	default:
		return snapshot{}, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, string(kind)+"_"), kind.Ext())
	// Strip an optional collision suffix: 20060102_150405_3 -> 20060102_150405.
	if parts := strings.Split(rest, "_"); len(parts) == 3 {
		rest = parts[0] + "_" + parts[1]
	}
	stamp, err := time.ParseInLocation(stampLayout, rest, time.Local)
	if err != nil {
		return snapshot{}, false
	}
	return snapshot{name: name, kind: kind, stamp: stamp}, true
}
