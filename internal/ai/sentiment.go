package ai

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strings"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
)

const sentimentPromptFormat = `Analyze this journal entry and provide a detailed sentiment analysis in JSON format:

Story: %s

moods to choose from: (joyful, nostalgic, adventurous, peaceful, melancholic, excited, grateful, reflective)
*Only add moods from this list*

Return a JSON object with:
- primary_mood: main emotional tone
- secondary_moods: array of 1-2 additional emotions present
- emotional_intensity: scale 1-10 (1=very mild, 10=very intense)
- themes: array of key themes (family, travel, achievement, nature, friendship, etc.)
- overall_sentiment: positive, negative, or neutral

IMPORTANT: Return ONLY the JSON object, no markdown formatting, no code blocks, no additional text.`

// AnalyzeSentiment derives the mood profile of a story. The model is
// asked for bare JSON; fenced responses are tolerated. A completion
// that cannot be parsed or fails vocabulary validation reports
// ErrMalformedAnalysis so callers can substitute a neutral default.
func (c *Client) AnalyzeSentiment(ctx context.Context, story string) (*domain.SentimentRecord, error) {
	req := chatRequest{
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(sentimentPromptFormat, story)},
		},
		MaxTokens:   300,
		Temperature: floatPtr(0.3),
	}

	content, err := c.complete(ctx, "sentiment", req)
	if err != nil {
		return nil, wrapError("sentiment", err)
	}

	var record domain.SentimentRecord
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &record); err != nil {
		return nil, wrapError("sentiment", fmt.Errorf("%w: %w", ErrMalformedAnalysis, err))
	}
	if err := record.Validate(); err != nil {
		return nil, wrapError("sentiment", fmt.Errorf("%w: %w", ErrMalformedAnalysis, err))
	}

	return &record, nil
}

// stripCodeFence removes a surrounding markdown code fence, with or
// without a language tag, if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
