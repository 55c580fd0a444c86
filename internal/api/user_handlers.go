package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	"github.com/Rishi-Dave/memoirAI/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}",
		Summary:     "Get user",
		Description: "Returns the account profile and preferences.",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePreferences",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/{userId}/preferences",
		Summary:     "Update preferences",
		Description: "Replaces the account's journal preferences.",
		Tags:        []string{"Users"},
	}, s.handleUpdatePreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/stats",
		Summary:     "Get user statistics",
		Description: "Summarizes journaling activity over the user's most recent entries.",
		Tags:        []string{"Users"},
	}, s.handleGetUserStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMoodDistribution",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/stats/moods",
		Summary:     "Get mood distribution",
		Description: "Counts primary moods over the user's entries from the trailing window of days.",
		Tags:        []string{"Users"},
	}, s.handleGetMoodDistribution)
}

// === DTOs ===

// GetUserInput identifies the account to fetch.
type GetUserInput struct {
	UserID string `path:"userId" doc:"User ID"`
}

// UpdatePreferencesRequest is the request body for a preferences update.
type UpdatePreferencesRequest struct {
	DefaultTone          string `json:"default_tone" validate:"required,tone" doc:"Tone used when a request does not name one"`
	PrivacySettings      string `json:"privacy_settings" validate:"required,oneof=private shared" doc:"Default privacy level for new entries"`
	NotificationsEnabled bool   `json:"notification_enabled" doc:"Whether notifications are enabled"`
}

// UpdatePreferencesInput wraps the preferences update for Huma.
type UpdatePreferencesInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Body   UpdatePreferencesRequest
}

// UserStatsResponse summarizes recent journaling activity.
type UserStatsResponse struct {
	TotalEntries       int            `json:"total_entries" doc:"Lifetime entry count"`
	RecentEntriesCount int            `json:"recent_entries_count" doc:"Entries in the stats window"`
	MoodDistribution   map[string]int `json:"mood_distribution" doc:"Entry count per primary mood"`
	AvgWordCount       int            `json:"avg_word_count" doc:"Average story word count"`
	MostCommonMood     string         `json:"most_common_mood" doc:"Most frequent primary mood"`
	FavoriteCount      int            `json:"favorite_count" doc:"Favorited entries in the window"`
}

// UserStatsOutput wraps the stats response for Huma.
type UserStatsOutput struct {
	Body UserStatsResponse
}

// MoodDistributionInput identifies the account and the trailing window.
type MoodDistributionInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Days   int    `query:"days" minimum:"0" maximum:"365" doc:"Window size in days (0 for the 30-day default)"`
}

// MoodDistributionResponse counts primary moods within the window.
type MoodDistributionResponse struct {
	Days             int            `json:"days" doc:"Window size in days"`
	MoodDistribution map[string]int `json:"mood_distribution" doc:"Entry count per primary mood"`
}

// MoodDistributionOutput wraps the mood distribution for Huma.
type MoodDistributionOutput struct {
	Body MoodDistributionResponse
}

// === Handlers ===

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	user, err := s.services.Users.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleUpdatePreferences(ctx context.Context, input *UpdatePreferencesInput) (*UserOutput, error) {
	if err := validate.Validate(input.Body); err != nil {
		return nil, err
	}

	user, err := s.services.Users.UpdatePreferences(ctx, input.UserID, domain.Preferences{
		DefaultTone:          domain.Tone(input.Body.DefaultTone),
		PrivacySettings:      input.Body.PrivacySettings,
		NotificationsEnabled: input.Body.NotificationsEnabled,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleGetUserStats(ctx context.Context, input *GetUserInput) (*UserStatsOutput, error) {
	stats, err := s.services.Entries.Stats(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &UserStatsOutput{
		Body: UserStatsResponse{
			TotalEntries:       stats.TotalEntries,
			RecentEntriesCount: stats.RecentEntriesCount,
			MoodDistribution:   stats.MoodDistribution,
			AvgWordCount:       stats.AvgWordCount,
			MostCommonMood:     stats.MostCommonMood,
			FavoriteCount:      stats.FavoriteCount,
		},
	}, nil
}

func (s *Server) handleGetMoodDistribution(ctx context.Context, input *MoodDistributionInput) (*MoodDistributionOutput, error) {
	distribution, err := s.services.Entries.MoodDistribution(ctx, input.UserID, input.Days)
	if err != nil {
		return nil, err
	}

	days := input.Days
	if days <= 0 {
		days = service.DefaultMoodWindowDays
	}

	return &MoodDistributionOutput{
		Body: MoodDistributionResponse{
			Days:             days,
			MoodDistribution: distribution,
		},
	}, nil
}
