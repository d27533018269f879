package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fittrackhq/fittrack-go/pkg/crypto/seal"
)

const (
	tokenFileName = "token"
	keyFileName   = "token.key"
)

// tokenAAD binds sealed blobs to their purpose so a blob copied from
// another fittrack file cannot be opened as a token.
var tokenAAD = []byte("fittrack/auth-token/v1")

// FileStore persists the token in a single file under dir, encrypted at
// rest with a machine-local key generated on first use.
type FileStore struct {
	dir    string
	sealer *seal.Sealer
}

// NewFileStore opens (or initializes) a file-backed token store in dir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: dir is required")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}

	key, err := loadOrCreateKey(filepath.Join(dir, keyFileName))
	if err != nil {
		return nil, err
	}
	sealer, err := seal.New(key)
	if err != nil {
		return nil, err
	}

	return &FileStore{dir: dir, sealer: sealer}, nil
}

// Get returns the persisted token, or ErrNotFound.
func (s *FileStore) Get() (string, error) {
	blob, err := os.ReadFile(s.tokenPath())
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: read token: %w", err)
	}

	plaintext, err := s.sealer.Open(blob, tokenAAD)
	if err != nil {
		// An unreadable token is as good as no token.
		return "", ErrNotFound
	}
	return string(plaintext), nil
}

// Set persists the token. The write goes through a temp file and rename
// so a crash never leaves a half-written token behind.
func (s *FileStore) Set(token string) error {
	blob, err := s.sealer.Seal([]byte(token), tokenAAD)
	if err != nil {
		return fmt.Errorf("store: seal token: %w", err)
	}

	tmp := s.tokenPath() + ".tmp"
	if err := os.WriteFile(tmp, blob, 0600); err != nil {
		return fmt.Errorf("store: write token: %w", err)
	}
	if err := os.Rename(tmp, s.tokenPath()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: commit token: %w", err)
	}
	return nil
}

// Remove deletes the persisted token.
func (s *FileStore) Remove() error {
	err := os.Remove(s.tokenPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: remove token: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) tokenPath() string {
	return filepath.Join(s.dir, tokenFileName)
}

// loadOrCreateKey reads the sealing key, generating one on first use.
func loadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != seal.KeySize {
			return nil, fmt.Errorf("store: key file %s has wrong size", path)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("store: read key: %w", err)
	}

	key, err = seal.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("store: generate key: %w", err)
	}
	if err := os.WriteFile(path, key, 0600); err != nil {
		return nil, fmt.Errorf("store: write key: %w", err)
	}
	return key, nil
}
