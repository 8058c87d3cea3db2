// internal/domain/models/payload.go
package models

// Payload is the full logical snapshot exchanged between the coordinator and
// a store: every user and every task, in creation order. Both on-disk formats
// serialize exactly this structure.
type Payload struct {
	Users []UserRecord `json:"users" bson:"users"`
	Tasks []TaskRecord `json:"tareas" bson:"tareas"`
}

// EmptyPayload returns a payload with zero users and zero tasks. Slices are
// non-nil so the readable format serializes them as [] rather than null.
func EmptyPayload() Payload {
	return Payload{Users: []UserRecord{}, Tasks: []TaskRecord{}}
}

// Empty reports whether the payload holds no entities at all.
func (p Payload) Empty() bool {
	return len(p.Users) == 0 && len(p.Tasks) == 0
}

// Normalize replaces nil collections with empty ones. Stores call it after
// decoding so callers never see a nil slice.
func (p *Payload) Normalize() {
	if p.Users == nil {
		p.Users = []UserRecord{}
	}
	if p.Tasks == nil {
		p.Tasks = []TaskRecord{}
	}
}
