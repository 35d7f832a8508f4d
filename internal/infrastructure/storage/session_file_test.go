package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agrowork/agrowork-cli/internal/core/ports"
)

func TestSessionFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	f := NewSessionFile(path)

	in := ports.PersistedSession{Token: "t1", User: `{"id":"1","username":"f1","role":"farmer"}`}
	if err := f.Save(in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, ok, err := f.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected persisted session to exist")
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}

func TestSessionFile_LoadMissing(t *testing.T) {
	f := NewSessionFile(filepath.Join(t.TempDir(), "absent.json"))

	_, ok, err := f.Load()
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if ok {
		t.Fatalf("missing file must report no session")
	}
}

func TestSessionFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if _, _, err := NewSessionFile(path).Load(); err == nil {
		t.Fatalf("corrupt file must be reported as an error")
	}
}

func TestSessionFile_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	f := NewSessionFile(path)

	if err := f.Clear(); err != nil {
		t.Fatalf("clearing an absent session must not fail: %v", err)
	}

	if err := f.Save(ports.PersistedSession{Token: "t1", User: "{}"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := f.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok, _ := f.Load(); ok {
		t.Fatalf("expected no session after clear")
	}
}

func TestSessionFile_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "session.json")
	f := NewSessionFile(path)

	if err := f.Save(ports.PersistedSession{Token: "t1", User: "{}"}); err != nil {
		t.Fatalf("save into missing directory failed: %v", err)
	}
}
