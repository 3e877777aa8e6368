package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshot_LoadMissingFileYieldsEmptyMap(t *testing.T) {
	snap := NewSnapshot(filepath.Join(t.TempDir(), "missing.json"), nil)

	data, err := snap.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("Load() = %v, want empty map", data)
	}
}

func TestSnapshot_SaveThenLoadRoundTrip(t *testing.T) {
	snap := NewSnapshot(filepath.Join(t.TempDir(), "data.json"), nil)

	in := map[string]any{
		"hero-title": "Rethinking Fundamental Physics",
		"team-members-core": []any{
			map[string]any{"id": "a", "name": "Ada"},
		},
	}
	if err := snap.Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := snap.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out["hero-title"] != "Rethinking Fundamental Physics" {
		t.Fatalf("Load() hero-title = %v", out["hero-title"])
	}
	items, ok := out["team-members-core"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("Load() team-members-core = %v", out["team-members-core"])
	}
}

func TestSnapshot_CorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	snap := NewSnapshot(path, nil)
	data, err := snap.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("Load() = %v, want empty map", data)
	}
}

func TestSnapshot_SaveNilWritesEmptyObject(t *testing.T) {
	snap := NewSnapshot(filepath.Join(t.TempDir(), "data.json"), nil)
	if err := snap.Save(nil); err != nil {
		t.Fatalf("Save(nil) error = %v", err)
	}
	data, err := snap.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("Load() = %v, want empty", data)
	}
}

func TestAuthFlags_RoundTripAndClear(t *testing.T) {
	flags := NewAuthFlags(filepath.Join(t.TempDir(), "auth.json"))

	if ok, _, _ := flags.Get(); ok {
		t.Fatal("Get() authenticated = true before Set")
	}

	if err := flags.Set("admin", "staff@ift.edu"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	ok, role, email := flags.Get()
	if !ok || role != "admin" || email != "staff@ift.edu" {
		t.Fatalf("Get() = %v %q %q", ok, role, email)
	}

	if err := flags.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if ok, _, _ := flags.Get(); ok {
		t.Fatal("Get() authenticated = true after Clear")
	}

	// Clearing an already-clear store is not an error.
	if err := flags.Clear(); err != nil {
		t.Fatalf("Clear() second call error = %v", err)
	}
}
