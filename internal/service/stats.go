package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainerrors "github.com/Rishi-Dave/memoirAI/internal/errors"
	"github.com/Rishi-Dave/memoirAI/internal/store"
)

// Stats are computed over this many most recent entries.
const statsWindow = 100

// DefaultMoodWindowDays is the mood distribution window when the
// caller does not pick one.
const DefaultMoodWindowDays = 30

// UserStats summarizes a user's recent journaling activity.
type UserStats struct {
	TotalEntries       int            `json:"total_entries"`
	RecentEntriesCount int            `json:"recent_entries_count"`
	MoodDistribution   map[string]int `json:"mood_distribution"`
	AvgWordCount       int            `json:"avg_word_count"`
	MostCommonMood     string         `json:"most_common_mood"`
	FavoriteCount      int            `json:"favorite_count"`
}

// Stats computes a user's statistics over their most recent entries.
func (s *EntryService) Stats(ctx context.Context, userID string) (*UserStats, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFoundf("user %s not found", userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	recent, err := s.store.ListEntries(ctx, userID, statsWindow, true)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	stats := &UserStats{
		TotalEntries:       user.TotalEntries,
		RecentEntriesCount: len(recent),
		MoodDistribution:   make(map[string]int),
		MostCommonMood:     "neutral",
	}
	if len(recent) == 0 {
		return stats, nil
	}

	totalWords := 0
	for _, entry := range recent {
		mood := entry.PrimaryMood
		if mood == "" {
			mood = "neutral"
		}
		stats.MoodDistribution[mood]++
		totalWords += entry.WordCount
		if entry.IsFavorite {
			stats.FavoriteCount++
		}
	}
	stats.AvgWordCount = totalWords / len(recent)

	best := 0
	for mood, count := range stats.MoodDistribution {
		if count > best || (count == best && mood < stats.MostCommonMood) {
			best = count
			stats.MostCommonMood = mood
		}
	}

	return stats, nil
}

// MoodDistribution counts primary moods over the user's entries from
// the trailing window of days. days <= 0 falls back to the 30-day
// default. Entries without a recorded mood count as neutral.
func (s *EntryService) MoodDistribution(ctx context.Context, userID string, days int) (map[string]int, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFoundf("user %s not found", userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if days <= 0 {
		days = DefaultMoodWindowDays
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	entries, err := s.store.ListEntriesByDateRange(ctx, userID, start, end, 0, true)
	if err != nil {
		return nil, fmt.Errorf("list entries by date range: %w", err)
	}

	distribution := make(map[string]int)
	for _, entry := range entries {
		mood := entry.PrimaryMood
		if mood == "" {
			mood = "neutral"
		}
		distribution[mood]++
	}
	return distribution, nil
}
