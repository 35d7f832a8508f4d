// Package storage persists the client session between runs. It is the only
// place that touches the session file; everything else goes through the
// session store.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agrowork/agrowork-cli/internal/core/ports"
)

// SessionFile stores the token/user pair as a small JSON document on disk,
// the terminal equivalent of the browser's two localStorage entries.
type SessionFile struct {
	path string
}

func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

// Load reads the persisted session. A missing file means "no session"; an
// unreadable or undecodable file is an error the caller decides how to treat.
func (f *SessionFile) Load() (ports.PersistedSession, bool, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return ports.PersistedSession{}, false, nil
	}
	if err != nil {
		return ports.PersistedSession{}, false, fmt.Errorf("read session file: %w", err)
	}

	var s ports.PersistedSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return ports.PersistedSession{}, false, fmt.Errorf("decode session file: %w", err)
	}
	return s, true, nil
}

// Save writes the session atomically (temp file + rename) with owner-only
// permissions, since the token is a credential.
func (f *SessionFile) Save(s ports.PersistedSession) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is not an error.
func (f *SessionFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
