// Package domain contains the core types for users and journal
// entries, along with the mood and tone vocabularies.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Tone selects the narrative voice for a generated story.
type Tone string

// Recognized story tones.
const (
	ToneWhimsical    Tone = "whimsical"
	ToneNostalgic    Tone = "nostalgic"
	ToneAdventurous  Tone = "adventurous"
	ToneHeartwarming Tone = "heartwarming"
)

// DefaultTone is used when a request does not specify one.
const DefaultTone = ToneHeartwarming

// IsValidTone reports whether t is in the tone vocabulary.
func IsValidTone(t Tone) bool {
	switch t {
	case ToneWhimsical, ToneNostalgic, ToneAdventurous, ToneHeartwarming:
		return true
	default:
		return false
	}
}

// Moods is the closed mood vocabulary. Sentiment analysis may only
// assign moods from this list; "neutral" is the fallback.
var Moods = []string{
	"joyful",
	"nostalgic",
	"adventurous",
	"peaceful",
	"melancholic",
	"excited",
	"grateful",
	"reflective",
	"neutral",
}

// IsValidMood reports whether mood is in the vocabulary.
func IsValidMood(mood string) bool {
	return slices.Contains(Moods, mood)
}

// Overall sentiment values.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SentimentRecord is the structured result of analyzing a story.
type SentimentRecord struct {
	PrimaryMood        string   `json:"primary_mood"`
	SecondaryMoods     []string `json:"secondary_moods,omitempty"`
	EmotionalIntensity int      `json:"emotional_intensity"`
	Themes             []string `json:"themes,omitempty"`
	OverallSentiment   string   `json:"overall_sentiment"`
}

// Validate checks the record against the mood vocabulary and value
// ranges.
func (r *SentimentRecord) Validate() error {
	if !IsValidMood(r.PrimaryMood) {
		return fmt.Errorf("unknown primary mood %q", r.PrimaryMood)
	}
	if len(r.SecondaryMoods) > 2 {
		return fmt.Errorf("at most 2 secondary moods, got %d", len(r.SecondaryMoods))
	}
	for _, m := range r.SecondaryMoods {
		if !IsValidMood(m) {
			return fmt.Errorf("unknown secondary mood %q", m)
		}
	}
	if r.EmotionalIntensity < 1 || r.EmotionalIntensity > 10 {
		return fmt.Errorf("emotional intensity %d out of range 1-10", r.EmotionalIntensity)
	}
	switch r.OverallSentiment {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		return fmt.Errorf("unknown overall sentiment %q", r.OverallSentiment)
	}
	return nil
}

// DefaultSentiment is substituted when analysis fails.
func DefaultSentiment() *SentimentRecord {
	return &SentimentRecord{
		PrimaryMood:        "neutral",
		EmotionalIntensity: 5,
		OverallSentiment:   SentimentNeutral,
	}
}

// EntryImage is one image attached to an entry, with its generated
// caption. UploadOrder is 1-based submission order.
type EntryImage struct {
	ImageID     string `json:"image_id"`
	Caption     string `json:"caption"`
	UploadOrder int    `json:"upload_order"`
	ImageURL    string `json:"image_url,omitempty"`
}

// JournalEntry is a persisted memoir entry. PrimaryMood duplicates
// SentimentAnalysis.PrimaryMood so mood listings never parse the full
// sentiment record; the two are kept in sync by the save path.
type JournalEntry struct {
	UserID       string `json:"user_id"`
	EntryID      string `json:"entry_id"`
	Title        string `json:"title"`
	StoryContent string `json:"story_content"`
	UserContext  string `json:"user_context,omitempty"`
	Tone         Tone   `json:"tone"`

	Images            []EntryImage     `json:"images"`
	SentimentAnalysis *SentimentRecord `json:"sentiment_analysis,omitempty"`
	PrimaryMood       string           `json:"primary_mood"`

	WordCount         int    `json:"word_count"`
	EstimatedReadTime string `json:"estimated_read_time"`

	IsFavorite   bool     `json:"is_favorite"`
	PrivacyLevel string   `json:"privacy_level"`
	Tags         []string `json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WordCount counts whitespace-separated words.
func WordCount(story string) int {
	return len(strings.Fields(story))
}

// EstimatedReadTime renders reading time at 200 words per minute,
// never less than a minute.
func EstimatedReadTime(wordCount int) string {
	minutes := wordCount / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

// FallbackTitle is used when title generation fails.
func FallbackTitle(tone Tone) string {
	return "My " + capitalize(string(tone)) + " Memory"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
