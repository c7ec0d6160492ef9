package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
)

// UserKey is the single entry holding the serialized session user
const UserKey = "wix_user"

// Store is the local key-value persistence for the session user.
// It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store in dir
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that disappears on Close
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadUser returns the stored user, or nil when there is none
func (s *Store) LoadUser() (*User, error) {
	var user *User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(UserKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var u User
			if err := json.Unmarshal(val, &u); err != nil {
				return fmt.Errorf("decode %s: %w", UserKey, err)
			}
			user = &u
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SaveUser replaces the stored user
func (s *Store) SaveUser(user *User) error {
	if user == nil {
		return errors.New("save user: nil user")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode %s: %w", UserKey, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(UserKey), data)
	})
	if err != nil {
		return err
	}
	log.Debug().Int64("user_id", user.ID).Msg("store: user saved")
	return nil
}

// ClearUser removes the stored user; clearing an empty store is not an error
func (s *Store) ClearUser() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(UserKey))
	})
}

// HasUser checks if a user is stored
func (s *Store) HasUser() bool {
	user, err := s.LoadUser()
	return err == nil && user != nil
}
