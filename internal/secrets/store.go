// Package secrets maintains the destination's secrets.env quarantine file.
// Credential values discovered during migration land here, never in the
// plaintext TOML config.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a KEY=value line store backed by a single file. Upserts are
// positional: an existing key is rewritten in place and every other line,
// including comments and unrelated keys, is preserved verbatim.
type Store struct {
	path string
}

// NewStore returns a store over path. The file need not exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Upsert writes key=value, replacing the first existing line for key or
// appending a new one. Empty values are ignored so a missing source secret
// never clobbers one the user already placed. The file is created with 0600
// and re-chmodded on every write; chmod failure is non-fatal on filesystems
// that do not support it.
func (s *Store) Upsert(key, value string) error {
	if value == "" {
		return nil
	}

	var lines []string
	data, err := os.ReadFile(s.path)
	if err == nil {
		content := strings.TrimSuffix(string(data), "\n")
		if content != "" {
			lines = strings.Split(content, "\n")
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read secrets file: %w", err)
	}

	entry := key + "=" + value
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, key+"=") {
			lines[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create secrets dir: %w", err)
	}
	out := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(s.path, []byte(out), 0o600); err != nil {
		return fmt.Errorf("write secrets file: %w", err)
	}
	_ = os.Chmod(s.path, 0o600)
	return nil
}
