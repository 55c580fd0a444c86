package store

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	"github.com/Rishi-Dave/memoirAI/internal/id"
)

// entryKey builds the primary key for an entry. Entry IDs start with a
// sortable timestamp, so a prefix iteration over a user's entries walks
// them oldest first.
func entryKey(userID, entryID string) []byte {
	return []byte(entryPrefix + userID + ":" + entryID)
}

// moodIndexKey builds the secondary index key for mood listings. The
// mood is denormalized from the entry's sentiment analysis at write
// time and kept in sync by the favorite and delete paths.
func moodIndexKey(userID, mood, entryID string) []byte {
	return []byte(moodIndexPrefix + userID + ":" + mood + ":" + entryID)
}

// CreateEntry persists a new journal entry along with its mood index.
// The index is always written; whether reads use it depends on the
// schema probe at open time.
func (s *Store) CreateEntry(_ context.Context, entry *domain.JournalEntry) error {
	key := entryKey(entry.UserID, entry.EntryID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check entry exists: %w", err)
	}
	if exists {
		return ErrEntryExists
	}

	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal entry: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		return txn.Set(moodIndexKey(entry.UserID, entry.PrimaryMood, entry.EntryID), []byte(entry.EntryID))
	})
}

// GetEntry retrieves a single entry owned by the user.
func (s *Store) GetEntry(_ context.Context, userID, entryID string) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	if err := s.get(entryKey(userID, entryID), &entry); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &entry, nil
}

// ListEntries returns a user's entries in creation order. newestFirst
// reverses the iteration. limit <= 0 means no limit.
func (s *Store) ListEntries(_ context.Context, userID string, limit int, newestFirst bool) ([]*domain.JournalEntry, error) {
	prefix := []byte(entryPrefix + userID + ":")
	entries := make([]*domain.JournalEntry, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = newestFirst

		it := txn.NewIterator(opts)
		defer it.Close()

		seekTo := prefix
		if newestFirst {
			// Reverse iteration seeks to the end of the prefix range.
			seekTo = append(append([]byte{}, prefix...), 0xFF)
		}

		for it.Seek(seekTo); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}

			err := it.Item().Value(func(val []byte) error {
				var entry domain.JournalEntry
				if unmarshalErr := json.Unmarshal(val, &entry); unmarshalErr != nil {
					// Skip malformed entries
					return nil //nolint:nilerr // intentionally skip malformed entries
				}
				entries = append(entries, &entry)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

// ListEntriesByDateRange returns a user's entries created within
// [start, end]. The bounds ride on the sortable timestamp embedded in
// entry IDs, so the scan never touches keys outside the range.
// newestFirst reverses the iteration; limit <= 0 means no limit.
func (s *Store) ListEntriesByDateRange(_ context.Context, userID string, start, end time.Time, limit int, newestFirst bool) ([]*domain.JournalEntry, error) {
	prefix := []byte(entryPrefix + userID + ":")
	lower := entryKey(userID, id.EntryIDTimeBound(start))
	// The 0xFF byte keeps entries created exactly at the end instant
	// inside the range.
	upper := append(entryKey(userID, id.EntryIDTimeBound(end)), 0xFF)

	entries := make([]*domain.JournalEntry, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = newestFirst

		it := txn.NewIterator(opts)
		defer it.Close()

		seekTo := lower
		if newestFirst {
			seekTo = upper
		}

		for it.Seek(seekTo); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}

			key := it.Item().Key()
			if bytes.Compare(key, lower) < 0 || bytes.Compare(key, upper) > 0 {
				break
			}

			err := it.Item().Value(func(val []byte) error {
				var entry domain.JournalEntry
				if unmarshalErr := json.Unmarshal(val, &entry); unmarshalErr != nil {
					// Skip malformed entries
					return nil //nolint:nilerr // intentionally skip malformed entries
				}
				entries = append(entries, &entry)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list entries by date range: %w", err)
	}

	return entries, nil
}

// ListEntriesByMood returns a user's entries whose primary mood matches,
// newest first. The strategy (index or scan) was fixed at open time.
func (s *Store) ListEntriesByMood(ctx context.Context, userID, mood string, limit int) ([]*domain.JournalEntry, error) {
	return s.moods.listByMood(ctx, userID, mood, limit)
}

// SetEntryFavorite flips the favorite flag on an entry and returns the
// updated record. Retried on write conflicts; a missing entry after
// retries reports ErrEntryNotFound.
func (s *Store) SetEntryFavorite(_ context.Context, userID, entryID string, favorite bool, at time.Time) (*domain.JournalEntry, error) {
	key := entryKey(userID, entryID)

	var updated *domain.JournalEntry
	var err error
	for range counterRetries {
		err = s.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(key)
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return ErrEntryNotFound
				}
				return err
			}

			var entry domain.JournalEntry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return fmt.Errorf("unmarshal entry: %w", err)
			}

			entry.IsFavorite = favorite
			entry.UpdatedAt = at

			data, err := json.Marshal(&entry)
			if err != nil {
				return fmt.Errorf("marshal entry: %w", err)
			}
			if err := txn.Set(key, data); err != nil {
				return err
			}

			updated = &entry
			return nil
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEntry removes an entry and its mood index key. A missing entry
// reports ErrEntryNotFound so callers can distinguish a no-op delete.
func (s *Store) DeleteEntry(_ context.Context, userID, entryID string) error {
	key := entryKey(userID, entryID)

	var err error
	for range counterRetries {
		err = s.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(key)
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return ErrEntryNotFound
				}
				return err
			}

			var entry domain.JournalEntry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return fmt.Errorf("unmarshal entry: %w", err)
			}

			if err := txn.Delete(key); err != nil {
				return err
			}

			idxKey := moodIndexKey(userID, entry.PrimaryMood, entryID)
			if err := txn.Delete(idxKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			return nil
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	return err
}
