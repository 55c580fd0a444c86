package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	"github.com/Rishi-Dave/memoirAI/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/register",
		Summary:       "Register new user",
		Description:   "Creates a new user account with default journal preferences.",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "User login",
		Description: "Verifies credentials and returns the account profile.",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "changePassword",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/change-password",
		Summary:     "Change password",
		Description: "Rotates the account credential after verifying the current one.",
		Tags:        []string{"Authentication"},
	}, s.handleChangePassword)
}

// === DTOs ===

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254" doc:"User email address"`
	Password string `json:"password" validate:"required,min=8,max=1024" doc:"User password"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254" doc:"User email"`
	Password string `json:"password" validate:"required,max=1024" doc:"User password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// ChangePasswordRequest is the request body for credential rotation.
type ChangePasswordRequest struct {
	UserID          string `json:"user_id" validate:"required" doc:"Account to update"`
	CurrentPassword string `json:"current_password" validate:"required" doc:"Current password"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=1024" doc:"New password"`
}

// ChangePasswordInput wraps the change-password request for Huma.
type ChangePasswordInput struct {
	Body ChangePasswordRequest
}

// PreferencesResponse contains journal preferences in API responses.
type PreferencesResponse struct {
	DefaultTone          string `json:"default_tone" doc:"Tone used when a request does not name one"`
	PrivacySettings      string `json:"privacy_settings" doc:"Default privacy level for new entries"`
	NotificationsEnabled bool   `json:"notification_enabled" doc:"Whether notifications are enabled"`
}

// UserResponse contains account information in API responses.
type UserResponse struct {
	UserID       string              `json:"user_id" doc:"User ID"`
	Email        string              `json:"email" doc:"User email"`
	Preferences  PreferencesResponse `json:"preferences" doc:"Journal preferences"`
	TotalEntries int                 `json:"total_entries" doc:"Number of journal entries"`
	IsActive     bool                `json:"is_active" doc:"Whether the account is active"`
	CreatedAt    time.Time           `json:"created_at" doc:"Creation timestamp"`
	LastLogin    time.Time           `json:"last_login" doc:"Last login timestamp"`
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*UserOutput, error) {
	user, err := s.services.Users.Register(ctx, service.RegisterRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*UserOutput, error) {
	user, err := s.services.Users.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleChangePassword(ctx context.Context, input *ChangePasswordInput) (*MessageOutput, error) {
	err := s.services.Users.ChangePassword(ctx, service.ChangePasswordRequest{
		UserID:          input.Body.UserID,
		CurrentPassword: input.Body.CurrentPassword,
		NewPassword:     input.Body.NewPassword,
	})
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "password updated"}}, nil
}

// mapUserResponse converts a domain user to the API shape.
func mapUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID: user.ID,
		Email:  user.Email,
		Preferences: PreferencesResponse{
			DefaultTone:          string(user.Preferences.DefaultTone),
			PrivacySettings:      user.Preferences.PrivacySettings,
			NotificationsEnabled: user.Preferences.NotificationsEnabled,
		},
		TotalEntries: user.TotalEntries,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		LastLogin:    user.LastLogin,
	}
}
