package store

import (
	"context"
	"encoding/json/v2"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
)

// moodQuerier answers mood-filtered entry listings. Two implementations
// exist: one over the mood index and one scanning the entry prefix for
// databases written before the index was introduced. Both return
// entries newest first.
type moodQuerier interface {
	listByMood(ctx context.Context, userID, mood string, limit int) ([]*domain.JournalEntry, error)
}

// indexedMoodQuerier walks the mood index in reverse. Index keys end in
// the entry ID, which embeds the creation timestamp, so reverse order
// is newest first.
type indexedMoodQuerier struct {
	store *Store
}

func (q *indexedMoodQuerier) listByMood(ctx context.Context, userID, mood string, limit int) ([]*domain.JournalEntry, error) {
	prefix := []byte(moodIndexPrefix + userID + ":" + mood + ":")

	var entryIDs []string
	err := q.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		seekTo := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seekTo); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entryIDs) >= limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				entryIDs = append(entryIDs, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list mood index: %w", err)
	}

	entries := make([]*domain.JournalEntry, 0, len(entryIDs))
	for _, entryID := range entryIDs {
		entry, err := q.store.GetEntry(ctx, userID, entryID)
		if err != nil {
			// A dangling index key points at a removed entry. Skip it.
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// scanMoodQuerier filters the full entry prefix. Used for databases
// that predate the mood index.
type scanMoodQuerier struct {
	store *Store
}

func (q *scanMoodQuerier) listByMood(_ context.Context, userID, mood string, limit int) ([]*domain.JournalEntry, error) {
	prefix := []byte(entryPrefix + userID + ":")
	entries := make([]*domain.JournalEntry, 0)

	err := q.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		seekTo := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seekTo); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var entry domain.JournalEntry
				if unmarshalErr := json.Unmarshal(val, &entry); unmarshalErr != nil {
					return nil //nolint:nilerr // intentionally skip malformed entries
				}
				if entry.PrimaryMood != mood {
					return nil
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
		return nil, fmt.Errorf("scan entries by mood: %w", err)
	}

	return entries, nil
}
