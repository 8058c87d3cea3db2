// internal/app/store/jsonstore/jsonstore.go
package jsonstore

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/dalemusser/taskhub/internal/app/store"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Store persists the payload as indented UTF-8 JSON, the human-readable half
// of the dual-format pair.
type Store struct{}

func New() *Store { return &Store{} }

func (s *Store) Kind() store.Kind { return store.KindJSON }

// Save marshals the payload and publishes it atomically.
func (s *Store) Save(payload models.Payload, path string) error {
	payload.Normalize()
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return store.WriteFileAtomic(path, data, 0o644)
}

// Load reads the payload back. A missing file is a valid first-run state and
// yields an empty payload; a file that exists but fails to parse yields a
// *store.CorruptError, never partial data.
func (s *Store) Load(path string) (models.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.EmptyPayload(), nil
		}
		return models.Payload{}, err
	}
	defer f.Close()

	var payload models.Payload
	dec := json.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return models.Payload{}, &store.CorruptError{Kind: s.Kind(), Path: path, Err: err}
	}
	// Anything after the document is corruption, not data.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return models.Payload{}, &store.CorruptError{Kind: s.Kind(), Path: path, Err: errors.New("trailing content after document")}
	}
	payload.Normalize()
	return payload, nil
}
