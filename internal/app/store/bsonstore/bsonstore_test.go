// internal/app/store/bsonstore/bsonstore_test.go
package bsonstore_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dalemusser/taskhub/internal/app/store"
	"github.com/dalemusser/taskhub/internal/app/store/bsonstore"
	"github.com/dalemusser/taskhub/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sistema.bin")
	want := testutil.SamplePayload(t)

	st := bsonstore.New()
	if err := st.Save(want, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := st.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := bsonstore.New().Load(filepath.Join(t.TempDir(), "sistema.bin"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Empty() {
		t.Errorf("payload = %+v, want empty", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, path string)
	}{
		{
			"truncated document",
			func(t *testing.T, path string) {
				if err := bsonstore.New().Save(testutil.SamplePayload(t), path); err != nil {
					t.Fatalf("Save failed: %v", err)
				}
				testutil.Corrupt(t, path)
			},
		},
		{
			"garbage bytes",
			func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("no document here"), 0o644); err != nil {
					t.Fatalf("WriteFile failed: %v", err)
				}
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sistema.bin")
			tc.prepare(t, path)
			_, err := bsonstore.New().Load(path)
			var cerr *store.CorruptError
			if !errors.As(err, &cerr) {
				t.Fatalf("err = %v, want *store.CorruptError", err)
			}
			if cerr.Kind != store.KindBinary {
				t.Errorf("Kind = %q, want %q", cerr.Kind, store.KindBinary)
			}
		})
	}
}
