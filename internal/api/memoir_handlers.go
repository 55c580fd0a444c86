package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Rishi-Dave/memoirAI/internal/service"
)

func (s *Server) registerMemoirRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createEntry",
		Method:        http.MethodPost,
		Path:          "/api/v1/entries",
		Summary:       "Create journal entry",
		Description:   "Runs the full memoir workflow: captions each image, generates a narrative in the requested tone, analyzes sentiment, titles the story, and persists the entry.",
		Tags:          []string{"Memoir"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateEntry)
}

// === DTOs ===

// ImageUpload is one base64-encoded image in a create request.
type ImageUpload struct {
	Data   string `json:"data" validate:"required,base64" doc:"Base64-encoded image bytes"`
	Format string `json:"format" validate:"required,oneof=jpeg jpg png gif webp" doc:"Image format"`
}

// CreateEntryRequest is the request body for entry creation.
type CreateEntryRequest struct {
	UserID  string        `json:"user_id" validate:"required" doc:"Owner of the new entry"`
	Images  []ImageUpload `json:"images" validate:"required,min=1,max=10,dive" doc:"Images to narrate, in upload order"`
	Context string        `json:"context,omitempty" validate:"max=2000" doc:"Extra context for the narrative"`
	Tone    string        `json:"tone,omitempty" validate:"omitempty,tone" doc:"Narrative tone (defaults to the user's preference)"`
}

// CreateEntryInput wraps the create request for Huma.
type CreateEntryInput struct {
	Body CreateEntryRequest
}

// === Handlers ===

func (s *Server) handleCreateEntry(ctx context.Context, input *CreateEntryInput) (*EntryOutput, error) {
	images := make([]service.ImageUpload, 0, len(input.Body.Images))
	for _, img := range input.Body.Images {
		images = append(images, service.ImageUpload{
			Data:   img.Data,
			Format: img.Format,
		})
	}

	entry, err := s.services.Memoir.CreateEntry(ctx, service.CreateEntryRequest{
		UserID:  input.Body.UserID,
		Images:  images,
		Context: input.Body.Context,
		Tone:    input.Body.Tone,
	})
	if err != nil {
		return nil, err
	}

	return &EntryOutput{Body: mapEntryResponse(entry)}, nil
}
