package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	domainerrors "github.com/Rishi-Dave/memoirAI/internal/errors"
)

// The tool endpoints expose the workflow's AI phases individually so
// clients can regenerate a single artifact without re-running the
// whole pipeline.
func (s *Server) registerToolRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "captionImage",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/caption-image",
		Summary:     "Caption an image",
		Description: "Generates a short factual caption for one base64-encoded image.",
		Tags:        []string{"Tools"},
	}, s.handleCaptionImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "generateStory",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/generate-story",
		Summary:     "Generate a story",
		Description: "Writes a journal narrative from captions and optional user context.",
		Tags:        []string{"Tools"},
	}, s.handleGenerateStory)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyzeSentiment",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/analyze-sentiment",
		Summary:     "Analyze story sentiment",
		Description: "Derives a mood profile from a story.",
		Tags:        []string{"Tools"},
	}, s.handleAnalyzeSentiment)

	huma.Register(s.api, huma.Operation{
		OperationID: "generateTitle",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/generate-title",
		Summary:     "Generate a story title",
		Description: "Produces a short evocative title for a story.",
		Tags:        []string{"Tools"},
	}, s.handleGenerateTitle)
}

// === DTOs ===

// CaptionImageRequest is the request body for image captioning.
type CaptionImageRequest struct {
	Data   string `json:"data" validate:"required,base64" doc:"Base64-encoded image bytes"`
	Format string `json:"format" validate:"required,oneof=jpeg jpg png gif webp" doc:"Image format"`
}

// CaptionImageInput wraps the caption request for Huma.
type CaptionImageInput struct {
	Body CaptionImageRequest
}

// CaptionResponse contains a generated caption.
type CaptionResponse struct {
	Caption string `json:"caption" doc:"Generated caption"`
}

// CaptionOutput wraps the caption response for Huma.
type CaptionOutput struct {
	Body CaptionResponse
}

// GenerateStoryRequest is the request body for story generation.
type GenerateStoryRequest struct {
	Captions []string `json:"captions" validate:"required,min=1,max=10,dive,required" doc:"Image captions, in upload order"`
	Context  string   `json:"context,omitempty" validate:"max=2000" doc:"Extra context for the narrative"`
	Tone     string   `json:"tone,omitempty" validate:"omitempty,tone" doc:"Narrative tone"`
}

// GenerateStoryInput wraps the story request for Huma.
type GenerateStoryInput struct {
	Body GenerateStoryRequest
}

// StoryResponse contains a generated story.
type StoryResponse struct {
	Story string `json:"story" doc:"Generated narrative"`
}

// StoryOutput wraps the story response for Huma.
type StoryOutput struct {
	Body StoryResponse
}

// AnalyzeSentimentRequest is the request body for sentiment analysis.
type AnalyzeSentimentRequest struct {
	Story string `json:"story" validate:"required" doc:"Story text to analyze"`
}

// AnalyzeSentimentInput wraps the analysis request for Huma.
type AnalyzeSentimentInput struct {
	Body AnalyzeSentimentRequest
}

// SentimentOutput wraps the sentiment response for Huma.
type SentimentOutput struct {
	Body SentimentResponse
}

// GenerateTitleRequest is the request body for title generation.
type GenerateTitleRequest struct {
	Story       string `json:"story" validate:"required" doc:"Story text to title"`
	PrimaryMood string `json:"primary_mood,omitempty" validate:"omitempty,mood" doc:"Mood to flavor the title"`
}

// GenerateTitleInput wraps the title request for Huma.
type GenerateTitleInput struct {
	Body GenerateTitleRequest
}

// TitleResponse contains a generated title.
type TitleResponse struct {
	Title string `json:"title" doc:"Generated title"`
}

// TitleOutput wraps the title response for Huma.
type TitleOutput struct {
	Body TitleResponse
}

// === Handlers ===

func (s *Server) handleCaptionImage(ctx context.Context, input *CaptionImageInput) (*CaptionOutput, error) {
	if err := validate.Validate(input.Body); err != nil {
		return nil, err
	}

	caption, err := s.tools.Captioner.Caption(ctx, input.Body.Data, input.Body.Format)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "failed to caption image")
	}

	return &CaptionOutput{Body: CaptionResponse{Caption: caption}}, nil
}

func (s *Server) handleGenerateStory(ctx context.Context, input *GenerateStoryInput) (*StoryOutput, error) {
	if err := validate.Validate(input.Body); err != nil {
		return nil, err
	}

	tone := domain.Tone(input.Body.Tone)
	if tone == "" {
		tone = domain.DefaultTone
	}

	story, err := s.tools.Narrator.GenerateStory(ctx, input.Body.Captions, input.Body.Context, tone)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "failed to generate story")
	}

	return &StoryOutput{Body: StoryResponse{Story: story}}, nil
}

func (s *Server) handleAnalyzeSentiment(ctx context.Context, input *AnalyzeSentimentInput) (*SentimentOutput, error) {
	if err := validate.Validate(input.Body); err != nil {
		return nil, err
	}

	sentiment, err := s.tools.Analyzer.AnalyzeSentiment(ctx, input.Body.Story)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "failed to analyze sentiment")
	}

	return &SentimentOutput{
		Body: SentimentResponse{
			PrimaryMood:        sentiment.PrimaryMood,
			SecondaryMoods:     sentiment.SecondaryMoods,
			EmotionalIntensity: sentiment.EmotionalIntensity,
			Themes:             sentiment.Themes,
			OverallSentiment:   sentiment.OverallSentiment,
		},
	}, nil
}

func (s *Server) handleGenerateTitle(ctx context.Context, input *GenerateTitleInput) (*TitleOutput, error) {
	if err := validate.Validate(input.Body); err != nil {
		return nil, err
	}

	var sentiment *domain.SentimentRecord
	if input.Body.PrimaryMood != "" {
		sentiment = &domain.SentimentRecord{PrimaryMood: input.Body.PrimaryMood}
	}

	title, err := s.tools.Titler.GenerateTitle(ctx, input.Body.Story, sentiment)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "failed to generate title")
	}

	return &TitleOutput{Body: TitleResponse{Title: title}}, nil
}
