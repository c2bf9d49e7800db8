package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archmap-dev/archmap/pkg/layout"
)

// roundTrip exercises the shared get/set/clear contract of a store.
func roundTrip(t *testing.T, s PositionStore) {
	t.Helper()
	ctx := context.Background()

	positions, err := s.Get(ctx, "proj")
	if err != nil {
		t.Fatalf("Get on empty store failed: %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("expected no positions, got %v", positions)
	}

	want := layout.PositionMap{
		"a": {X: 10, Y: 20},
		"b": {X: -5, Y: 400},
	}
	if err := s.Set(ctx, "proj", want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "proj")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d positions, got %d", len(want), len(got))
	}
	for id, p := range want {
		if got[id] != p {
			t.Errorf("position %s: expected %v, got %v", id, p, got[id])
		}
	}

	// Other projects stay empty.
	other, err := s.Get(ctx, "other")
	if err != nil {
		t.Fatalf("Get other failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected other project empty, got %v", other)
	}

	if err := s.Clear(ctx, "proj"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	cleared, err := s.Get(ctx, "proj")
	if err != nil {
		t.Fatalf("Get after Clear failed: %v", err)
	}
	if len(cleared) != 0 {
		t.Errorf("expected no positions after Clear, got %v", cleared)
	}

	// Clearing an absent project is not an error.
	if err := s.Clear(ctx, "proj"); err != nil {
		t.Errorf("Clear of absent project failed: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	roundTrip(t, s)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	original := layout.PositionMap{"a": {X: 1, Y: 2}}
	if err := s.Set(ctx, "proj", original); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's map must not leak into the store.
	original["a"] = layout.Point{X: 99, Y: 99}

	got, err := s.Get(ctx, "proj")
	if err != nil {
		t.Fatal(err)
	}
	if got["a"] != (layout.Point{X: 1, Y: 2}) {
		t.Errorf("expected stored copy untouched, got %v", got["a"])
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	defer s.Close()
	roundTrip(t, s)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := layout.PositionMap{"a": {X: 3, Y: 4}}
	if err := first.Set(ctx, "proj", want); err != nil {
		t.Fatal(err)
	}

	second, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := second.Get(ctx, "proj")
	if err != nil {
		t.Fatal(err)
	}
	if got["a"] != want["a"] {
		t.Errorf("expected %v from a fresh instance, got %v", want["a"], got["a"])
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "proj", layout.PositionMap{"a": {X: 1}}); err != nil {
		t.Fatal(err)
	}

	// Corrupt the stored file in place.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored file, got %d", len(entries))
	}
	if err := os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A corrupt entry reads as no saved positions and is discarded.
	got, err := s.Get(ctx, "proj")
	if err != nil {
		t.Fatalf("Get of corrupt entry failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no positions from a corrupt entry, got %v", got)
	}
	if remaining, _ := os.ReadDir(dir); len(remaining) != 0 {
		t.Errorf("expected corrupt file removed, found %d files", len(remaining))
	}
}

func TestFileStoreHashedNames(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "../escape/attempt", layout.PositionMap{"a": {X: 1}}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected the entry inside the store dir, got %d files", len(entries))
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "proj", layout.PositionMap{"a": {X: 1}}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get(ctx, "proj")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected the null store to never persist, got %v", got)
	}
	if err := s.Clear(ctx, "proj"); err != nil {
		t.Errorf("Clear failed: %v", err)
	}
}
