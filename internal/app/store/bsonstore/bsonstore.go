// internal/app/store/bsonstore/bsonstore.go
package bsonstore

import (
	"os"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dalemusser/taskhub/internal/app/store"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Store persists the payload as a single BSON document, the compact half of
// the dual-format pair. The records carry bson tags identical to their json
// tags, so both formats share one logical layout.
type Store struct{}

func New() *Store { return &Store{} }

func (s *Store) Kind() store.Kind { return store.KindBinary }

// Save marshals the payload and publishes it atomically.
func (s *Store) Save(payload models.Payload, path string) error {
	payload.Normalize()
	data, err := bson.Marshal(payload)
	if err != nil {
		return err
	}
	return store.WriteFileAtomic(path, data, 0o644)
}

// Load reads the payload back. Missing file means empty payload; a document
// that fails to decode (truncation, garbage) is a *store.CorruptError.
func (s *Store) Load(path string) (models.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.EmptyPayload(), nil
		}
		return models.Payload{}, err
	}
	var payload models.Payload
	if err := bson.Unmarshal(data, &payload); err != nil {
		return models.Payload{}, &store.CorruptError{Kind: s.Kind(), Path: path, Err: err}
	}
	payload.Normalize()
	return payload, nil
}
