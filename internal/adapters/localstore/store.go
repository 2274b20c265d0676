// Package localstore persists all application state as one JSON document on
// disk: hydrate once at startup, flush after every mutation, last write wins.
// The document doubles as the portable backup format.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/viralforge/courierdesk/internal/domain"
)

type document struct {
	Entries      []domain.CourierEntry `json:"entries"`
	Credentials  *domain.Credentials   `json:"credentials,omitempty"`
	GoogleTokens *domain.GoogleTokens  `json:"google_tokens,omitempty"`
}

// Store is the single-writer state container. All repositories returned by
// NewRepositories share it and serialize access through one mutex.
type Store struct {
	mu   sync.Mutex
	path string
	doc  document
}

// Open hydrates the store from path, creating an empty document when the
// file does not exist yet. An empty path keeps the store memory-only, which
// is what the tests use.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if err := json.Unmarshal(raw, &s.doc); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", path, err)
	}
	return s, nil
}

// flush writes the document atomically. Callers hold s.mu.
func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

type Repositories struct {
	Entries *EntryRepository
	Creds   *CredentialRepository
	Tokens  *TokenRepository
}

func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Entries: &EntryRepository{store: store},
		Creds:   &CredentialRepository{store: store},
		Tokens:  &TokenRepository{store: store},
	}
}
