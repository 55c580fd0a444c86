package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	"github.com/Rishi-Dave/memoirAI/internal/id"
)

// setupTestStore creates a temporary store for testing
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create temp directory for test database
	tmpDir, err := os.MkdirTemp("", "memoirai-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	// Return cleanup function
	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func testEntry(t *testing.T, userID, mood string, createdAt time.Time) *domain.JournalEntry {
	t.Helper()

	entryID, err := id.NewEntryID(createdAt)
	require.NoError(t, err)

	return &domain.JournalEntry{
		UserID:       userID,
		EntryID:      entryID,
		Title:        "A Day to Remember",
		StoryContent: "We walked along the shore as the sun came down.",
		Tone:         domain.ToneHeartwarming,
		SentimentAnalysis: &domain.SentimentRecord{
			PrimaryMood:        mood,
			EmotionalIntensity: 5,
			OverallSentiment:   domain.SentimentPositive,
		},
		PrimaryMood:       mood,
		WordCount:         10,
		EstimatedReadTime: "1 min",
		PrivacyLevel:      domain.PrivacyPrivate,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func TestNewStampsSchemaMarkerOnFreshDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	exists, err := store.exists([]byte(schemaMarkerKey))
	require.NoError(t, err)
	assert.True(t, exists)

	_, indexed := store.moods.(*indexedMoodQuerier)
	assert.True(t, indexed)
}

func TestNewFallsBackToScanForLegacyDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	// Simulate a database written before the mood index: entries
	// present but no schema marker.
	st, err := New(dbPath, nil)
	require.NoError(t, err)

	entry := testEntry(t, "user-1", "joyful", time.Now().UTC())
	require.NoError(t, st.CreateEntry(ctx, entry))
	require.NoError(t, st.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(schemaMarkerKey))
	}))
	require.NoError(t, st.Close())

	reopened, err := New(dbPath, nil)
	require.NoError(t, err)
	defer reopened.Close()

	_, scanning := reopened.moods.(*scanMoodQuerier)
	assert.True(t, scanning)

	// Legacy databases still answer mood queries, via the scan path.
	entries, err := reopened.ListEntriesByMood(ctx, "user-1", "joyful", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
