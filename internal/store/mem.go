package store

import "github.com/fittrackhq/fittrack-go/pkg/cmap"

const memTokenKey = "auth/token"

// MemStore is an in-memory token store. Nothing survives the process;
// it backs tests and throwaway REPL sessions.
type MemStore struct {
	m *cmap.Map[string]
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{m: cmap.New[string]()}
}

// Get returns the held token, or ErrNotFound.
func (s *MemStore) Get() (string, error) {
	token, ok := s.m.Get(memTokenKey)
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

// Set stores the token.
func (s *MemStore) Set(token string) error {
	s.m.Set(memTokenKey, token)
	return nil
}

// Remove deletes the token.
func (s *MemStore) Remove() error {
	s.m.Delete(memTokenKey)
	return nil
}

// Close is a no-op.
func (s *MemStore) Close() error {
	return nil
}
