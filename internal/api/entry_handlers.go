package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
)

func (s *Server) registerEntryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listEntries",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/entries",
		Summary:     "List entries",
		Description: "Returns the user's journal entries, newest first unless newest_first is false.",
		Tags:        []string{"Entries"},
	}, s.handleListEntries)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFavoriteEntries",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/entries/favorites",
		Summary:     "List favorite entries",
		Description: "Returns the user's favorited entries, newest first unless newest_first is false.",
		Tags:        []string{"Entries"},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEntriesByDateRange",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/entries/range",
		Summary:     "List entries by date range",
		Description: "Returns the user's entries created within the inclusive [start, end] window.",
		Tags:        []string{"Entries"},
	}, s.handleListByDateRange)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEntriesByMood",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/entries/mood/{mood}",
		Summary:     "List entries by mood",
		Description: "Returns the user's entries whose primary mood matches, newest first.",
		Tags:        []string{"Entries"},
	}, s.handleListByMood)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEntry",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/entries/{entryId}",
		Summary:     "Get entry",
		Description: "Returns a single journal entry.",
		Tags:        []string{"Entries"},
	}, s.handleGetEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "setEntryFavorite",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{userId}/entries/{entryId}/favorite",
		Summary:     "Favorite or unfavorite entry",
		Description: "Sets the favorite flag on an entry.",
		Tags:        []string{"Entries"},
	}, s.handleSetFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteEntry",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{userId}/entries/{entryId}",
		Summary:     "Delete entry",
		Description: "Permanently removes an entry and its mood index.",
		Tags:        []string{"Entries"},
	}, s.handleDeleteEntry)
}

// === DTOs ===

// ListEntriesInput identifies the user, an optional result cap, and
// the iteration direction.
type ListEntriesInput struct {
	UserID      string `path:"userId" doc:"User ID"`
	Limit       int    `query:"limit" minimum:"0" maximum:"500" doc:"Maximum entries to return (0 for all)"`
	NewestFirst bool   `query:"newest_first" default:"true" doc:"Return newest entries first; false for oldest first"`
}

// ListByDateRangeInput bounds a listing to a creation-time window.
type ListByDateRangeInput struct {
	UserID      string    `path:"userId" doc:"User ID"`
	Start       time.Time `query:"start" required:"true" doc:"Range start (RFC 3339), inclusive"`
	End         time.Time `query:"end" required:"true" doc:"Range end (RFC 3339), inclusive"`
	Limit       int       `query:"limit" minimum:"0" maximum:"500" doc:"Maximum entries to return (0 for all)"`
	NewestFirst bool      `query:"newest_first" default:"true" doc:"Return newest entries first; false for oldest first"`
}

// ListByMoodInput identifies the user, mood, and an optional result cap.
type ListByMoodInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Mood   string `path:"mood" doc:"Primary mood to filter by"`
	Limit  int    `query:"limit" minimum:"0" maximum:"500" doc:"Maximum entries to return (0 for all)"`
}

// GetEntryInput identifies a single entry.
type GetEntryInput struct {
	UserID  string `path:"userId" doc:"User ID"`
	EntryID string `path:"entryId" doc:"Entry ID"`
}

// SetFavoriteRequest is the request body for the favorite toggle.
type SetFavoriteRequest struct {
	IsFavorite bool `json:"is_favorite" doc:"Desired favorite state"`
}

// SetFavoriteInput wraps the favorite toggle for Huma.
type SetFavoriteInput struct {
	UserID  string `path:"userId" doc:"User ID"`
	EntryID string `path:"entryId" doc:"Entry ID"`
	Body    SetFavoriteRequest
}

// EntryImageResponse describes one image attached to an entry.
type EntryImageResponse struct {
	ImageID     string `json:"image_id" doc:"Image identifier"`
	Caption     string `json:"caption" doc:"Generated caption"`
	UploadOrder int    `json:"upload_order" doc:"1-based position in the upload"`
	ImageURL    string `json:"image_url,omitempty" doc:"Optional stored image location"`
}

// SentimentResponse describes the mood analysis of an entry.
type SentimentResponse struct {
	PrimaryMood        string   `json:"primary_mood" doc:"Dominant mood"`
	SecondaryMoods     []string `json:"secondary_moods,omitempty" doc:"Up to two supporting moods"`
	EmotionalIntensity int      `json:"emotional_intensity" doc:"Intensity from 1 to 10"`
	Themes             []string `json:"themes,omitempty" doc:"Detected themes"`
	OverallSentiment   string   `json:"overall_sentiment" doc:"positive, negative, or neutral"`
}

// EntryResponse contains a journal entry in API responses.
type EntryResponse struct {
	UserID            string               `json:"user_id" doc:"Owner"`
	EntryID           string               `json:"entry_id" doc:"Entry ID"`
	Title             string               `json:"title" doc:"Entry title"`
	StoryContent      string               `json:"story_content" doc:"Generated narrative"`
	UserContext       string               `json:"user_context,omitempty" doc:"Context supplied at creation"`
	Tone              string               `json:"tone" doc:"Narrative tone"`
	Images            []EntryImageResponse `json:"images" doc:"Captioned images in upload order"`
	SentimentAnalysis *SentimentResponse   `json:"sentiment_analysis,omitempty" doc:"Mood analysis"`
	PrimaryMood       string               `json:"primary_mood" doc:"Dominant mood"`
	WordCount         int                  `json:"word_count" doc:"Story word count"`
	EstimatedReadTime string               `json:"estimated_read_time" doc:"Approximate reading time"`
	IsFavorite        bool                 `json:"is_favorite" doc:"Favorite flag"`
	PrivacyLevel      string               `json:"privacy_level" doc:"private or shared"`
	Tags              []string             `json:"tags,omitempty" doc:"User tags"`
	CreatedAt         time.Time            `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt         time.Time            `json:"updated_at" doc:"Last update timestamp"`
}

// EntryOutput wraps a single entry for Huma.
type EntryOutput struct {
	Body EntryResponse
}

// EntryListResponse contains a page of entries.
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries" doc:"Matching entries in the requested order"`
	Count   int             `json:"count" doc:"Number of entries returned"`
}

// EntryListOutput wraps an entry list for Huma.
type EntryListOutput struct {
	Body EntryListResponse
}

// === Handlers ===

func (s *Server) handleListEntries(ctx context.Context, input *ListEntriesInput) (*EntryListOutput, error) {
	entries, err := s.services.Entries.ListByUser(ctx, input.UserID, input.Limit, input.NewestFirst)
	if err != nil {
		return nil, err
	}

	return &EntryListOutput{Body: mapEntryList(entries)}, nil
}

func (s *Server) handleListFavorites(ctx context.Context, input *ListEntriesInput) (*EntryListOutput, error) {
	entries, err := s.services.Entries.ListFavorites(ctx, input.UserID, input.Limit, input.NewestFirst)
	if err != nil {
		return nil, err
	}

	return &EntryListOutput{Body: mapEntryList(entries)}, nil
}

func (s *Server) handleListByDateRange(ctx context.Context, input *ListByDateRangeInput) (*EntryListOutput, error) {
	entries, err := s.services.Entries.ListByDateRange(ctx, input.UserID, input.Start, input.End, input.Limit, input.NewestFirst)
	if err != nil {
		return nil, err
	}

	return &EntryListOutput{Body: mapEntryList(entries)}, nil
}

func (s *Server) handleListByMood(ctx context.Context, input *ListByMoodInput) (*EntryListOutput, error) {
	entries, err := s.services.Entries.ListByMood(ctx, input.UserID, input.Mood, input.Limit)
	if err != nil {
		return nil, err
	}

	return &EntryListOutput{Body: mapEntryList(entries)}, nil
}

func (s *Server) handleGetEntry(ctx context.Context, input *GetEntryInput) (*EntryOutput, error) {
	entry, err := s.services.Entries.GetByID(ctx, input.UserID, input.EntryID)
	if err != nil {
		return nil, err
	}

	return &EntryOutput{Body: mapEntryResponse(entry)}, nil
}

func (s *Server) handleSetFavorite(ctx context.Context, input *SetFavoriteInput) (*EntryOutput, error) {
	entry, err := s.services.Entries.SetFavorite(ctx, input.UserID, input.EntryID, input.Body.IsFavorite)
	if err != nil {
		return nil, err
	}

	return &EntryOutput{Body: mapEntryResponse(entry)}, nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, input *GetEntryInput) (*MessageOutput, error) {
	if err := s.services.Entries.Delete(ctx, input.UserID, input.EntryID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "entry deleted"}}, nil
}

// mapEntryResponse converts a domain entry to the API shape.
func mapEntryResponse(entry *domain.JournalEntry) EntryResponse {
	images := make([]EntryImageResponse, 0, len(entry.Images))
	for _, img := range entry.Images {
		images = append(images, EntryImageResponse{
			ImageID:     img.ImageID,
			Caption:     img.Caption,
			UploadOrder: img.UploadOrder,
			ImageURL:    img.ImageURL,
		})
	}

	resp := EntryResponse{
		UserID:            entry.UserID,
		EntryID:           entry.EntryID,
		Title:             entry.Title,
		StoryContent:      entry.StoryContent,
		UserContext:       entry.UserContext,
		Tone:              string(entry.Tone),
		Images:            images,
		PrimaryMood:       entry.PrimaryMood,
		WordCount:         entry.WordCount,
		EstimatedReadTime: entry.EstimatedReadTime,
		IsFavorite:        entry.IsFavorite,
		PrivacyLevel:      entry.PrivacyLevel,
		Tags:              entry.Tags,
		CreatedAt:         entry.CreatedAt,
		UpdatedAt:         entry.UpdatedAt,
	}

	if sa := entry.SentimentAnalysis; sa != nil {
		resp.SentimentAnalysis = &SentimentResponse{
			PrimaryMood:        sa.PrimaryMood,
			SecondaryMoods:     sa.SecondaryMoods,
			EmotionalIntensity: sa.EmotionalIntensity,
			Themes:             sa.Themes,
			OverallSentiment:   sa.OverallSentiment,
		}
	}

	return resp
}

func mapEntryList(entries []*domain.JournalEntry) EntryListResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, mapEntryResponse(entry))
	}
	return EntryListResponse{Entries: out, Count: len(out)}
}
