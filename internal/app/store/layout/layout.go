// internal/app/store/layout/layout.go
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/taskhub/internal/app/store"
)

// Data file base name inside the json/ and binarios/ subdirectories.
const dataFileName = "sistema"

// Layout owns the on-disk directory structure:
//
//	<base>/json/sistema.json
//	<base>/binarios/sistema.bin
//	<base>/backups/<kind>_<YYYYMMDD_HHMMSS>[_n].<ext>
//
// It creates missing directories at construction and never reads or writes
// entity data itself.
type Layout struct {
	base string
}

// New builds the layout rooted at base, creating any missing directories.
// It fails if a required path exists but is not a directory, or if creation
// is denied.
func New(base string) (*Layout, error) {
	if strings.TrimSpace(base) == "" {
		return nil, errors.New("base directory is required")
	}
	l := &Layout{base: base}
	for _, dir := range []string{l.Base(), l.JSONDir(), l.BinaryDir(), l.BackupDir()} {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	// Make the creation durable so data files never land in a directory that
	// vanishes after a crash.
	if err := store.FsyncDir(dir); err != nil {
		return fmt.Errorf("sync %s: %w", dir, err)
	}
	if parent := filepath.Dir(dir); parent != dir {
		if err := store.FsyncDir(parent); err != nil {
			return fmt.Errorf("sync %s: %w", parent, err)
		}
	}
	return nil
}

func (l *Layout) Base() string      { return l.base }
func (l *Layout) JSONDir() string   { return filepath.Join(l.base, "json") }
func (l *Layout) BinaryDir() string { return filepath.Join(l.base, "binarios") }
func (l *Layout) BackupDir() string { return filepath.Join(l.base, "backups") }

// JSONFile is the committed readable-format data file.
func (l *Layout) JSONFile() string {
	return filepath.Join(l.JSONDir(), dataFileName+store.KindJSON.Ext())
}

// BinaryFile is the committed compact-format data file.
func (l *Layout) BinaryFile() string {
	return filepath.Join(l.BinaryDir(), dataFileName+store.KindBinary.Ext())
}

// DataFile returns the committed data file for a store kind.
func (l *Layout) DataFile(kind store.Kind) string {
	if kind == store.KindBinary {
		return l.BinaryFile()
	}
	return l.JSONFile()
}

// Stats summarizes what the data directory currently holds.
type Stats struct {
	JSONFiles    int
	BinaryFiles  int
	Backups      int
	TotalBytes   int64
	NewestBackup time.Time
}

// StorageStats walks the three data subdirectories and reports file counts,
// total size, and the modification time of the newest backup.
func (l *Layout) StorageStats() (Stats, error) {
	var st Stats
	count := func(dir string, n *int, newest *time.Time) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				return err
			}
			*n++
			st.TotalBytes += info.Size()
			if newest != nil && info.ModTime().After(*newest) {
				*newest = info.ModTime()
			}
		}
		return nil
	}
	if err := count(l.JSONDir(), &st.JSONFiles, nil); err != nil {
		return Stats{}, err
	}
	if err := count(l.BinaryDir(), &st.BinaryFiles, nil); err != nil {
		return Stats{}, err
	}
	if err := count(l.BackupDir(), &st.Backups, &st.NewestBackup); err != nil {
		return Stats{}, err
	}
	return st, nil
}
