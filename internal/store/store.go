// Package store persists users and journal entries in a Badger key-value database.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Key layout. Entry IDs embed a sortable timestamp, so iterating an
// entry prefix yields entries in creation order.
const (
	userPrefix        = "user:"
	userByEmailPrefix = "idx:users:email:"  // For login lookups
	entryPrefix       = "entry:"            // entry:<userID>:<entryID>
	moodIndexPrefix   = "idx:entries:mood:" // idx:entries:mood:<userID>:<mood>:<entryID>
	schemaMarkerKey   = "meta:schema"
)

// schemaVersion recorded under schemaMarkerKey. Databases written before
// the mood index existed have no marker and are served by scan queries.
const schemaVersion = "2"

var (
	// ErrUserNotFound is returned when a user cannot be found by ID or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when attempting to create a user with an existing ID.
	ErrUserExists = errors.New("user already exists")
	// ErrEmailExists is returned when attempting to create a user with an email that's already in use.
	ErrEmailExists = errors.New("email already in use")
	// ErrEntryNotFound is returned when a journal entry cannot be found.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrEntryExists is returned when attempting to create an entry with an existing ID.
	ErrEntryExists = errors.New("entry already exists")
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// moods answers mood-filtered listing. Selected at open time:
	// databases carrying the schema marker use the mood index,
	// databases created before the index exist are scanned.
	moods moodQuerier
}

// New opens (or creates) the database at path and probes its schema.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	indexed, err := store.probeSchema()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("probe schema: %w", err)
	}
	if indexed {
		store.moods = &indexedMoodQuerier{store: store}
	} else {
		store.moods = &scanMoodQuerier{store: store}
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path, "mood_index", indexed)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// probeSchema reports whether the mood index is available. A database
// with the schema marker has the index. A database without the marker
// but with existing entries predates the index and must be scanned.
// An empty database is stamped with the marker and indexed from the start.
func (s *Store) probeSchema() (bool, error) {
	marker, err := s.exists([]byte(schemaMarkerKey))
	if err != nil {
		return false, err
	}
	if marker {
		return true, nil
	}

	hasEntries, err := s.hasKeyWithPrefix([]byte(entryPrefix))
	if err != nil {
		return false, err
	}
	if hasEntries {
		if s.logger != nil {
			s.logger.Warn("database predates mood index, mood queries will scan")
		}
		return false, nil
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(schemaMarkerKey), []byte(schemaVersion))
	}); err != nil {
		return false, err
	}
	return true, nil
}

// hasKeyWithPrefix reports whether any key exists under the prefix.
func (s *Store) hasKeyWithPrefix(prefix []byte) (bool, error) {
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		it.Seek(prefix)
		found = it.ValidForPrefix(prefix)
		return nil
	})
	return found, err
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
