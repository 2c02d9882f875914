// Package auth owns client-side credential state: the access token store
// that the API client and the session façade share.
package auth

import (
	"os"
	"strings"
	"sync"
)

// TokenStore holds the current access token for the session. It is the only
// shared mutable state between the API client and the auth session, so it is
// constructor-injected into both rather than kept as a package-level global.
//
// Implementations must be safe for concurrent use: a reader must never
// observe a half-updated token.
type TokenStore interface {
	// Get returns the current access token, or "" when none is held.
	Get() string

	// Set replaces the current access token.
	Set(token string)

	// Clear removes the current access token.
	Clear()
}

// MemoryStore keeps the access token in process memory only. This is the
// production store: the token is never written to durable storage.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// FileStore mirrors the token to a file so a restarted development client
// can resume a session without a running browser-style cookie refresh.
//
// It must only be wired in when the dev-persistence config flag is set;
// production builds construct a MemoryStore instead.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	token string
}

// NewFileStore creates a file-backed store at path, loading any previously
// persisted token. A read error is treated as an absent token.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path}
	if b, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(b))
	}
	return s
}

func (s *FileStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *FileStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	_ = os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	_ = os.Remove(s.path)
}
