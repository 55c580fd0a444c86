package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	domainerrors "github.com/Rishi-Dave/memoirAI/internal/errors"
)

// AI collaborators. Consumed as interfaces so the workflow can be
// exercised against stubs; internal/ai.Client implements all four.

// Captioner describes a single image.
type Captioner interface {
	Caption(ctx context.Context, imageBase64, format string) (string, error)
}

// NarrativeGenerator turns captions and user context into a story.
type NarrativeGenerator interface {
	GenerateStory(ctx context.Context, captions []string, userContext string, tone domain.Tone) (string, error)
}

// SentimentAnalyzer derives a mood profile from a story.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, story string) (*domain.SentimentRecord, error)
}

// TitleGenerator produces a short title for a story.
type TitleGenerator interface {
	GenerateTitle(ctx context.Context, story string, sentiment *domain.SentimentRecord) (string, error)
}

// MemoirService runs the entry creation workflow: caption each image,
// generate the narrative, analyze sentiment, title the story, persist.
// Captioning and narrative are fatal phases; sentiment and title fall
// back to defaults so a flaky analysis never loses a story.
type MemoirService struct {
	entries   *EntryService
	users     *UserService
	captioner Captioner
	narrator  NarrativeGenerator
	analyzer  SentimentAnalyzer
	titler    TitleGenerator
	logger    *slog.Logger
}

// NewMemoirService creates the workflow service.
func NewMemoirService(
	entries *EntryService,
	users *UserService,
	captioner Captioner,
	narrator NarrativeGenerator,
	analyzer SentimentAnalyzer,
	titler TitleGenerator,
	logger *slog.Logger,
) *MemoirService {
	return &MemoirService{
		entries:   entries,
		users:     users,
		captioner: captioner,
		narrator:  narrator,
		analyzer:  analyzer,
		titler:    titler,
		logger:    logger,
	}
}

// ImageUpload is one base64-encoded image in a create request.
type ImageUpload struct {
	Data   string `json:"data" validate:"required,base64"`
	Format string `json:"format" validate:"required,oneof=jpeg jpg png gif webp"`
}

// CreateEntryRequest contains everything needed to build an entry.
type CreateEntryRequest struct {
	UserID  string        `json:"user_id" validate:"required"`
	Images  []ImageUpload `json:"images" validate:"required,min=1,max=10,dive"`
	Context string        `json:"context" validate:"max=2000"`
	Tone    string        `json:"tone" validate:"omitempty,tone"`
}

// CreateEntry runs the full workflow and returns the persisted entry.
// On a fatal phase failure nothing is persisted.
func (s *MemoirService) CreateEntry(ctx context.Context, req CreateEntryRequest) (*domain.JournalEntry, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	tone := domain.Tone(req.Tone)
	if tone == "" {
		tone = user.Preferences.DefaultTone
	}
	if tone == "" {
		tone = domain.DefaultTone
	}

	// Phase 1: caption each image in submission order. Any failure
	// aborts the workflow and names the failing position.
	images := make([]domain.EntryImage, 0, len(req.Images))
	captions := make([]string, 0, len(req.Images))
	for i, img := range req.Images {
		caption, err := s.captioner.Caption(ctx, img.Data, img.Format)
		if err != nil {
			return nil, domainerrors.Wrapf(err, domainerrors.CodeUpstream,
				"failed to caption image %d of %d", i+1, len(req.Images))
		}

		imageID := uuid.NewString()
		images = append(images, domain.EntryImage{
			ImageID: imageID,
			Caption: caption,
			// Placeholder reference; image bytes are not persisted.
			ImageURL:    "images/" + imageID,
			UploadOrder: i + 1,
		})
		captions = append(captions, caption)
	}

	// Phase 2: narrative. Fatal.
	story, err := s.narrator.GenerateStory(ctx, captions, req.Context, tone)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream,
			"failed to generate story")
	}

	// Phase 3: sentiment. Soft failure, falls back to neutral.
	sentiment, err := s.analyzer.AnalyzeSentiment(ctx, story)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Sentiment analysis failed, using default",
				"user_id", req.UserID,
				"error", err,
			)
		}
		sentiment = domain.DefaultSentiment()
	}

	// Phase 4: title. Soft failure, falls back to a tone-based title.
	title, err := s.titler.GenerateTitle(ctx, story, sentiment)
	if err != nil || title == "" {
		if err != nil && s.logger != nil {
			s.logger.Warn("Title generation failed, using fallback",
				"user_id", req.UserID,
				"error", err,
			)
		}
		title = domain.FallbackTitle(tone)
	}

	// Phase 5: persist. Fatal.
	entry, err := s.entries.Save(ctx, EntryDraft{
		UserID:       req.UserID,
		Title:        title,
		StoryContent: story,
		UserContext:  req.Context,
		Tone:         tone,
		Images:       images,
		Sentiment:    sentiment,
		PrivacyLevel: user.Preferences.PrivacySettings,
	})
	if err != nil {
		return nil, fmt.Errorf("persist entry: %w", err)
	}

	return entry, nil
}
