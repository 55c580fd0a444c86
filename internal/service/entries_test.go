package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	domainerrors "github.com/Rishi-Dave/memoirAI/internal/errors"
	"github.com/Rishi-Dave/memoirAI/internal/id"
	"github.com/Rishi-Dave/memoirAI/internal/store"
)

type entryFixture struct {
	store   *store.Store
	entries *EntryService
	users   *UserService
	userID  string
}

func newEntryFixture(t *testing.T) *entryFixture {
	t.Helper()

	st := newTestStore(t)
	entries := NewEntryService(st, nil)
	users := NewUserService(st, nil)

	user, err := users.Register(context.Background(), RegisterRequest{
		Email:    "writer@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	return &entryFixture{store: st, entries: entries, users: users, userID: user.ID}
}

func (f *entryFixture) save(t *testing.T, mood, story string) *domain.JournalEntry {
	t.Helper()

	entry, err := f.entries.Save(context.Background(), EntryDraft{
		UserID:       f.userID,
		Title:        "A Day",
		StoryContent: story,
		Tone:         domain.ToneHeartwarming,
		Sentiment: &domain.SentimentRecord{
			PrimaryMood:        mood,
			EmotionalIntensity: 5,
			OverallSentiment:   domain.SentimentPositive,
		},
	})
	require.NoError(t, err)
	return entry
}

// saveAt writes an entry directly to the store so tests can control
// the creation timestamp embedded in its ID.
func (f *entryFixture) saveAt(t *testing.T, mood string, createdAt time.Time) *domain.JournalEntry {
	t.Helper()

	entryID, err := id.NewEntryID(createdAt)
	require.NoError(t, err)

	entry := &domain.JournalEntry{
		UserID:       f.userID,
		EntryID:      entryID,
		Title:        "A Day",
		StoryContent: "A backdated day.",
		Tone:         domain.ToneHeartwarming,
		PrimaryMood:  mood,
		PrivacyLevel: domain.PrivacyPrivate,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	require.NoError(t, f.store.CreateEntry(context.Background(), entry))
	return entry
}

func TestSave_DerivedFields(t *testing.T) {
	f := newEntryFixture(t)

	entry := f.save(t, "joyful", "We laughed all the way home under the summer rain.")

	assert.NotEmpty(t, entry.EntryID)
	assert.Equal(t, "joyful", entry.PrimaryMood)
	assert.Equal(t, 10, entry.WordCount)
	assert.Equal(t, "1 min", entry.EstimatedReadTime)
	assert.Equal(t, domain.PrivacyPrivate, entry.PrivacyLevel)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
}

func TestSave_IncrementsCounter(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	f.save(t, "joyful", "one")
	f.save(t, "peaceful", "two")

	user, err := f.users.GetUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 2, user.TotalEntries)
}

func TestSave_NilSentimentGetsDefault(t *testing.T) {
	f := newEntryFixture(t)

	entry, err := f.entries.Save(context.Background(), EntryDraft{
		UserID:       f.userID,
		Title:        "Untitled",
		StoryContent: "A quiet day.",
		Tone:         domain.DefaultTone,
	})
	require.NoError(t, err)
	assert.Equal(t, "neutral", entry.PrimaryMood)
}

func TestListByUser_NewestFirst(t *testing.T) {
	f := newEntryFixture(t)

	first := f.save(t, "joyful", "first")
	second := f.save(t, "joyful", "second")

	entries, err := f.entries.ListByUser(context.Background(), f.userID, 0, true)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.EntryID, entries[0].EntryID)
	assert.Equal(t, first.EntryID, entries[1].EntryID)
}

func TestListByUser_OldestFirst(t *testing.T) {
	f := newEntryFixture(t)

	first := f.save(t, "joyful", "first")
	second := f.save(t, "joyful", "second")

	entries, err := f.entries.ListByUser(context.Background(), f.userID, 0, false)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.EntryID, entries[0].EntryID)
	assert.Equal(t, second.EntryID, entries[1].EntryID)
}

func TestListFavorites_FiltersBeforeLimit(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	// Three entries; only the oldest is favorited. A limit of 1 must
	// still find it even though two newer non-favorites come first.
	oldest := f.save(t, "joyful", "oldest")
	f.save(t, "joyful", "middle")
	f.save(t, "joyful", "newest")

	_, err := f.entries.SetFavorite(ctx, f.userID, oldest.EntryID, true)
	require.NoError(t, err)

	favorites, err := f.entries.ListFavorites(ctx, f.userID, 1, true)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, oldest.EntryID, favorites[0].EntryID)
}

func TestListFavorites_OldestFirst(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	first := f.save(t, "joyful", "first")
	second := f.save(t, "joyful", "second")
	for _, e := range []*domain.JournalEntry{first, second} {
		_, err := f.entries.SetFavorite(ctx, f.userID, e.EntryID, true)
		require.NoError(t, err)
	}

	favorites, err := f.entries.ListFavorites(ctx, f.userID, 0, false)
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, first.EntryID, favorites[0].EntryID)
	assert.Equal(t, second.EntryID, favorites[1].EntryID)
}

func TestListByDateRange(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	old := f.saveAt(t, "joyful", now.AddDate(0, 0, -10))
	middle := f.saveAt(t, "peaceful", now.AddDate(0, 0, -5))
	recent := f.saveAt(t, "joyful", now.AddDate(0, 0, -1))

	entries, err := f.entries.ListByDateRange(ctx, f.userID, now.AddDate(0, 0, -6), now, 0, true)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, recent.EntryID, entries[0].EntryID)
	assert.Equal(t, middle.EntryID, entries[1].EntryID)

	entries, err = f.entries.ListByDateRange(ctx, f.userID, now.AddDate(0, 0, -30), now, 0, false)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, old.EntryID, entries[0].EntryID)
	assert.Equal(t, recent.EntryID, entries[2].EntryID)
}

func TestListByDateRange_EndBeforeStart(t *testing.T) {
	f := newEntryFixture(t)
	now := time.Now().UTC()

	_, err := f.entries.ListByDateRange(context.Background(), f.userID, now, now.AddDate(0, 0, -1), 0, true)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestListByMood(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	f.save(t, "joyful", "sunny")
	f.save(t, "melancholic", "rainy")
	f.save(t, "joyful", "sunnier")

	joyful, err := f.entries.ListByMood(ctx, f.userID, "joyful", 0)
	require.NoError(t, err)
	assert.Len(t, joyful, 2)

	_, err = f.entries.ListByMood(ctx, f.userID, "ecstatic", 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestSetFavorite_Toggle(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	entry := f.save(t, "joyful", "a story")

	updated, err := f.entries.SetFavorite(ctx, f.userID, entry.EntryID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsFavorite)
	assert.True(t, updated.UpdatedAt.After(entry.UpdatedAt) || updated.UpdatedAt.Equal(entry.UpdatedAt))

	updated, err = f.entries.SetFavorite(ctx, f.userID, entry.EntryID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsFavorite)
}

func TestSetFavorite_NotFound(t *testing.T) {
	f := newEntryFixture(t)

	_, err := f.entries.SetFavorite(context.Background(), f.userID, "ENTRY_missing", true)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDelete_DecrementsCounter(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	entry := f.save(t, "joyful", "a story")
	require.NoError(t, f.entries.Delete(ctx, f.userID, entry.EntryID))

	_, err := f.entries.GetByID(ctx, f.userID, entry.EntryID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	user, err := f.users.GetUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.TotalEntries)
}

func TestDelete_NotFound(t *testing.T) {
	f := newEntryFixture(t)

	err := f.entries.Delete(context.Background(), f.userID, "ENTRY_missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestStats(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	f.save(t, "joyful", "one two three four")
	f.save(t, "joyful", "one two")
	favorite := f.save(t, "peaceful", "one two three four five six")
	_, err := f.entries.SetFavorite(ctx, f.userID, favorite.EntryID, true)
	require.NoError(t, err)

	stats, err := f.entries.Stats(ctx, f.userID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 3, stats.RecentEntriesCount)
	assert.Equal(t, map[string]int{"joyful": 2, "peaceful": 1}, stats.MoodDistribution)
	assert.Equal(t, 4, stats.AvgWordCount)
	assert.Equal(t, "joyful", stats.MostCommonMood)
	assert.Equal(t, 1, stats.FavoriteCount)
}

func TestStats_EmptyUser(t *testing.T) {
	f := newEntryFixture(t)

	stats, err := f.entries.Stats(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalEntries)
	assert.Empty(t, stats.MoodDistribution)
	assert.Equal(t, "neutral", stats.MostCommonMood)
}

func TestStats_UnknownUser(t *testing.T) {
	f := newEntryFixture(t)

	_, err := f.entries.Stats(context.Background(), "user-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestMoodDistribution_WindowExcludesOldEntries(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	f.saveAt(t, "joyful", now.AddDate(0, 0, -45))
	f.saveAt(t, "joyful", now.AddDate(0, 0, -5))
	f.saveAt(t, "joyful", now.AddDate(0, 0, -2))
	f.saveAt(t, "peaceful", now.AddDate(0, 0, -1))

	distribution, err := f.entries.MoodDistribution(ctx, f.userID, 30)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"joyful": 2, "peaceful": 1}, distribution)

	// days <= 0 falls back to the 30-day default.
	distribution, err = f.entries.MoodDistribution(ctx, f.userID, 0)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"joyful": 2, "peaceful": 1}, distribution)

	distribution, err = f.entries.MoodDistribution(ctx, f.userID, 60)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"joyful": 3, "peaceful": 1}, distribution)
}

func TestMoodDistribution_MissingMoodCountsAsNeutral(t *testing.T) {
	f := newEntryFixture(t)
	now := time.Now().UTC()

	f.saveAt(t, "", now.AddDate(0, 0, -1))

	distribution, err := f.entries.MoodDistribution(context.Background(), f.userID, 30)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"neutral": 1}, distribution)
}

func TestMoodDistribution_UnknownUser(t *testing.T) {
	f := newEntryFixture(t)

	_, err := f.entries.MoodDistribution(context.Background(), "user-missing", 30)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
