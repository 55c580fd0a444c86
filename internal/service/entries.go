package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	domainerrors "github.com/Rishi-Dave/memoirAI/internal/errors"
	"github.com/Rishi-Dave/memoirAI/internal/id"
	"github.com/Rishi-Dave/memoirAI/internal/store"
)

// EntryService is the repository facade for journal entries. All
// derived fields (entry ID, word count, read time, primary mood) are
// computed here so callers never hand-assemble a persisted record.
type EntryService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewEntryService creates a new entry service.
func NewEntryService(store *store.Store, logger *slog.Logger) *EntryService {
	return &EntryService{
		store:  store,
		logger: logger,
	}
}

// EntryDraft is a fully generated entry awaiting persistence.
type EntryDraft struct {
	UserID       string
	Title        string
	StoryContent string
	UserContext  string
	Tone         domain.Tone
	Images       []domain.EntryImage
	Sentiment    *domain.SentimentRecord
	PrivacyLevel string
	Tags         []string
}

// Save persists a draft. The entry ID embeds the creation timestamp so
// a user's entries sort by key. The owner's entry counter is
// incremented afterwards; a counter failure is logged but does not undo
// the saved entry.
func (s *EntryService) Save(ctx context.Context, draft EntryDraft) (*domain.JournalEntry, error) {
	if draft.Sentiment == nil {
		draft.Sentiment = domain.DefaultSentiment()
	}

	now := time.Now().UTC()
	entryID, err := id.NewEntryID(now)
	if err != nil {
		return nil, fmt.Errorf("generate entry ID: %w", err)
	}

	privacy := draft.PrivacyLevel
	if privacy == "" {
		privacy = domain.PrivacyPrivate
	}

	wordCount := domain.WordCount(draft.StoryContent)
	entry := &domain.JournalEntry{
		UserID:            draft.UserID,
		EntryID:           entryID,
		Title:             draft.Title,
		StoryContent:      draft.StoryContent,
		UserContext:       draft.UserContext,
		Tone:              draft.Tone,
		Images:            draft.Images,
		SentimentAnalysis: draft.Sentiment,
		PrimaryMood:       draft.Sentiment.PrimaryMood,
		WordCount:         wordCount,
		EstimatedReadTime: domain.EstimatedReadTime(wordCount),
		PrivacyLevel:      privacy,
		Tags:              draft.Tags,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	if err := s.store.AdjustEntryCount(ctx, draft.UserID, 1); err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to increment entry count",
				"user_id", draft.UserID,
				"entry_id", entryID,
				"error", err,
			)
		}
	}

	if s.logger != nil {
		s.logger.Info("Entry saved",
			"user_id", draft.UserID,
			"entry_id", entryID,
			"mood", entry.PrimaryMood,
			"word_count", wordCount,
		)
	}

	return entry, nil
}

// GetByID returns one of the user's entries.
func (s *EntryService) GetByID(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.store.GetEntry(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			return nil, domainerrors.NotFoundf("entry %s not found", entryID)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// ListByUser returns a user's entries ordered by creation time.
// limit <= 0 means all entries.
func (s *EntryService) ListByUser(ctx context.Context, userID string, limit int, newestFirst bool) ([]*domain.JournalEntry, error) {
	entries, err := s.store.ListEntries(ctx, userID, limit, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ListFavorites returns the user's favorited entries ordered by
// creation time. The full range is filtered before the limit applies,
// so a page of favorites is never short just because non-favorites
// were mixed in.
func (s *EntryService) ListFavorites(ctx context.Context, userID string, limit int, newestFirst bool) ([]*domain.JournalEntry, error) {
	all, err := s.store.ListEntries(ctx, userID, 0, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	favorites := make([]*domain.JournalEntry, 0)
	for _, entry := range all {
		if !entry.IsFavorite {
			continue
		}
		favorites = append(favorites, entry)
		if limit > 0 && len(favorites) >= limit {
			break
		}
	}
	return favorites, nil
}

// ListByDateRange returns the user's entries created within
// [start, end], ordered by creation time. limit <= 0 means all
// entries in range.
func (s *EntryService) ListByDateRange(ctx context.Context, userID string, start, end time.Time, limit int, newestFirst bool) ([]*domain.JournalEntry, error) {
	if end.Before(start) {
		return nil, domainerrors.Validationf("date range end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	entries, err := s.store.ListEntriesByDateRange(ctx, userID, start, end, limit, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list entries by date range: %w", err)
	}
	return entries, nil
}

// ListByMood returns the user's entries with the given primary mood,
// newest first. The mood must be in the vocabulary.
func (s *EntryService) ListByMood(ctx context.Context, userID, mood string, limit int) ([]*domain.JournalEntry, error) {
	if !domain.IsValidMood(mood) {
		return nil, domainerrors.Validationf("unknown mood %q", mood)
	}

	entries, err := s.store.ListEntriesByMood(ctx, userID, mood, limit)
	if err != nil {
		return nil, fmt.Errorf("list entries by mood: %w", err)
	}
	return entries, nil
}

// SetFavorite flips an entry's favorite flag and returns the updated
// record.
func (s *EntryService) SetFavorite(ctx context.Context, userID, entryID string, favorite bool) (*domain.JournalEntry, error) {
	entry, err := s.store.SetEntryFavorite(ctx, userID, entryID, favorite, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			return nil, domainerrors.NotFoundf("entry %s not found", entryID)
		}
		return nil, fmt.Errorf("set favorite: %w", err)
	}
	return entry, nil
}

// Delete removes an entry and decrements the owner's counter. The
// counter never drops below zero, and a decrement failure does not
// fail the delete.
func (s *EntryService) Delete(ctx context.Context, userID, entryID string) error {
	if err := s.store.DeleteEntry(ctx, userID, entryID); err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			return domainerrors.NotFoundf("entry %s not found", entryID)
		}
		return fmt.Errorf("delete entry: %w", err)
	}

	if err := s.store.AdjustEntryCount(ctx, userID, -1); err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to decrement entry count",
				"user_id", userID,
				"entry_id", entryID,
				"error", err,
			)
		}
	}

	if s.logger != nil {
		s.logger.Info("Entry deleted", "user_id", userID, "entry_id", entryID)
	}

	return nil
}
