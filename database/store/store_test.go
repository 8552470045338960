package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type record struct {
	ID    string `json:"id"`
	Seats int    `json:"seats"`
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	blob, err := s.Get(ctx, Rides)
	if err != nil {
		t.Fatalf("Get on empty store: %v", err)
	}
	if blob != nil {
		t.Fatalf("Get on empty store = %q, want nil", blob)
	}

	var rides []record
	if err := Load(ctx, s, Rides, &rides); err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if rides != nil {
		t.Fatalf("Load on empty store = %v, want nil slice", rides)
	}

	want := []record{{ID: "r1", Seats: 3}}
	if err := Save(ctx, s, Rides, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Load(ctx, s, Rides, &rides); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rides) != 1 || rides[0] != want[0] {
		t.Fatalf("Load = %v, want %v", rides, want)
	}

	err = SaveMany(ctx, s, map[string]any{
		Rides:    []record{{ID: "r1", Seats: 2}},
		Bookings: []record{{ID: "b1"}},
	})
	if err != nil {
		t.Fatalf("SaveMany: %v", err)
	}
	var bookings []record
	if err := Load(ctx, s, Bookings, &bookings); err != nil {
		t.Fatalf("Load bookings: %v", err)
	}
	if err := Load(ctx, s, Rides, &rides); err != nil {
		t.Fatalf("Load rides: %v", err)
	}
	if len(bookings) != 1 || rides[0].Seats != 2 {
		t.Fatalf("after SaveMany rides = %v bookings = %v", rides, bookings)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledger.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	exerciseStore(t, s)

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var rides []record
	if err := Load(context.Background(), reopened, Rides, &rides); err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if len(rides) != 1 || rides[0].Seats != 2 {
		t.Fatalf("rides after reopen = %v", rides)
	}
}

func TestFileStoreRejectsInvalidBlobWithoutWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()
	if err := s.Set(ctx, Users, []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	err = s.SetMany(ctx, map[string][]byte{
		Users: []byte(`[{"email":"a@b.c"}]`),
		Rides: []byte(`{broken`),
	})
	if err == nil {
		t.Fatal("SetMany with invalid JSON succeeded")
	}
	blob, err := s.Get(ctx, Users)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(blob) != "[]" {
		t.Fatalf("users = %s, want []", blob)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := s.Get(context.Background(), Rides); err == nil {
		t.Fatal("Get on corrupt file succeeded")
	}
}

func TestMemoryStoreFailWrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := Save(ctx, s, Rides, []record{{ID: "r1"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	boom := errors.New("disk full")
	s.FailWrites = boom
	err := SaveMany(ctx, s, map[string]any{Rides: []record{}, Bookings: []record{{ID: "b"}}})
	if !errors.Is(err, boom) {
		t.Fatalf("SaveMany err = %v, want %v", err, boom)
	}
	s.FailWrites = nil
	var rides []record
	if err := Load(ctx, s, Rides, &rides); err != nil {
		t.Fatal(err)
	}
	if len(rides) != 1 {
		t.Fatalf("rides = %v, want untouched", rides)
	}
	blob, _ := s.Get(ctx, Bookings)
	if blob != nil {
		t.Fatalf("bookings = %s, want nil", blob)
	}
}
