// Package auth holds client-side authentication state: the persisted bearer
// token and the session store consumed by routing and views.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const tokenFile = "token"

// FileTokenStore keeps the single bearer token in a file under the atim
// directory. It is the only durable client state besides local caches.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store writing to dir/token.
func NewFileTokenStore(dir string) *FileTokenStore {
	return &FileTokenStore{path: filepath.Join(dir, tokenFile)}
}

// Token returns the persisted token, if any.
func (s *FileTokenStore) Token() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Save writes the token, replacing any previous one.
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// Clear removes the persisted token. A missing token is not an error.
func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}
