package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testRecord(name string) *Record {
	return &Record{
		Name:        name,
		Repo:        "repo",
		Branch:      "feature",
		SourceRef:   "https://example.com/org/repo.git",
		SourceKind:  "remote",
		ContainerID: "abc123",
		State:       "running",
		CreatedAt:   "2026-08-30T00:00:00Z",
	}
}

func TestOpen_missingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "sessions.yaml"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if got := s.List(); len(got) != 0 {
		t.Errorf("List() = %d records for a fresh store, want 0", len(got))
	}
}

func TestUpsertGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	rec := testRecord("branchbox-repo.feature")
	if err := s.Upsert(rec); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := s.Get(rec.Name)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ContainerID != "abc123" || got.Branch != "feature" {
		t.Errorf("Get() = %+v, unexpected fields", got)
	}

	if err := s.Delete(rec.Name); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(rec.Name); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op.
	if err := s.Delete(rec.Name); err != nil {
		t.Errorf("Delete() of unknown name error: %v", err)
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(testRecord("branchbox-repo.feature")); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(testRecord("branchbox-api.main")); err != nil {
		t.Fatal(err)
	}

	// Reopen and verify the records survived.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	recs := s2.List()
	if len(recs) != 2 {
		t.Fatalf("List() after reopen = %d records, want 2", len(recs))
	}
	// List is sorted by name.
	if recs[0].Name != "branchbox-api.main" || recs[1].Name != "branchbox-repo.feature" {
		t.Errorf("List() order = [%s, %s], want sorted by name", recs[0].Name, recs[1].Name)
	}
}

func TestGet_returnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(testRecord("branchbox-repo.feature")); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Get("branchbox-repo.feature")
	got.State = "stopped"

	again, _ := s.Get("branchbox-repo.feature")
	if again.State != "running" {
		t.Error("mutating a Get() result leaked into the store")
	}
}

func TestOpen_invalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	if err := os.WriteFile(path, []byte(":::invalid"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Open() should fail on invalid YAML")
	}
}
