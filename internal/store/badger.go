package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

// tokenKey is the fixed key the auth token lives under.
var tokenKey = []byte("auth/token")

// BadgerStore persists the token in an embedded Badger database. It is
// the backend of choice when the config directory already holds other
// fittrack state and file-per-secret layouts are unwanted.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a Badger-backed token store in dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: dir is required")
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get returns the persisted token, or ErrNotFound.
func (s *BadgerStore) Get() (string, error) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: read token: %w", err)
	}
	return token, nil
}

// Set persists the token in a single transaction.
func (s *BadgerStore) Set(token string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tokenKey, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("store: write token: %w", err)
	}
	return nil
}

// Remove deletes the persisted token.
func (s *BadgerStore) Remove() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(tokenKey)
	})
	if err != nil {
		return fmt.Errorf("store: remove token: %w", err)
	}
	return nil
}

// Close shuts down the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
