package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestComputeHash(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("same content gives same hash", func(t *testing.T) {
		a := write("a.txt", "identical content")
		b := write("b.txt", "identical content")

		ha, err := ComputeHash(a)
		if err != nil {
			t.Fatal(err)
		}
		hb, err := ComputeHash(b)
		if err != nil {
			t.Fatal(err)
		}
		if ha != hb {
			t.Errorf("hashes differ for identical content: %s vs %s", ha, hb)
		}
		if len(ha) != 32 {
			t.Errorf("hash length %d, want 32", len(ha))
		}
	})

	t.Run("different content gives different hash", func(t *testing.T) {
		a := write("c.txt", "content one")
		b := write("d.txt", "content two")

		ha, _ := ComputeHash(a)
		hb, _ := ComputeHash(b)
		if ha == hb {
			t.Error("different content must hash differently")
		}
	})

	t.Run("empty file hashes", func(t *testing.T) {
		p := write("empty.txt", "")
		if _, err := ComputeHash(p); err != nil {
			t.Errorf("empty file: %v", err)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := ComputeHash(filepath.Join(dir, "missing.txt")); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestStoreRoundTrip(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	store, err := NewStore()
	if err != nil {
		t.Fatal(err)
	}

	if got := store.Get("unknown"); got != (ReadingState{}) {
		t.Errorf("unknown hash should return the zero state, got %+v", got)
	}

	want := ReadingState{SlideIndex: 42, WPM: 450}
	if err := store.Set("abc123", want); err != nil {
		t.Fatal(err)
	}
	if got := store.Get("abc123"); got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}

	if err := store.Clear("abc123"); err != nil {
		t.Fatal(err)
	}
	if got := store.Get("abc123"); got != (ReadingState{}) {
		t.Errorf("cleared state should be zero, got %+v", got)
	}
}

func TestStorePersistence(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	first, err := NewStore()
	if err != nil {
		t.Fatal(err)
	}
	want := ReadingState{SlideIndex: 7, WPM: 350}
	if err := first.Set("doc-hash", want); err != nil {
		t.Fatal(err)
	}

	second, err := NewStore()
	if err != nil {
		t.Fatal(err)
	}
	if got := second.Get("doc-hash"); got != want {
		t.Errorf("reloaded state %+v, want %+v", got, want)
	}
}

func TestStoreSurvivesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	path := filepath.Join(dir, "skim", stateFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json at all"), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore()
	if err != nil {
		t.Fatalf("corrupt state file should not be fatal: %v", err)
	}
	if got := store.Get("anything"); got != (ReadingState{}) {
		t.Errorf("expected empty state, got %+v", got)
	}
}
