// internal/app/store/store.go
package store

import (
	"fmt"

	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Kind identifies one of the two on-disk formats.
type Kind string

const (
	// KindJSON is the human-readable store format.
	KindJSON Kind = "json"
	// KindBinary is the compact store format.
	KindBinary Kind = "binario"
)

// Ext returns the file extension used by snapshot and data files of this kind.
func (k Kind) Ext() string {
	if k == KindBinary {
		return ".bin"
	}
	return ".json"
}

// Store is a save/load implementation for one on-disk format. Save publishes
// atomically: a crash mid-write never corrupts the previously committed file.
// Load on a missing file returns an empty payload and no error; "no data yet"
// is a valid first-run state.
type Store interface {
	Kind() Kind
	Save(payload models.Payload, path string) error
	Load(path string) (models.Payload, error)
}

// CorruptError reports a store file that exists but cannot be parsed. Callers
// use it to distinguish "broken" from "absent" when deciding whether to fall
// back to the other format or to a backup.
type CorruptError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s store corrupt at %s: %v", e.Kind, e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }
