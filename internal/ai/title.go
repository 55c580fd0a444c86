package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
)

const titlePromptFormat = `Create an engaging title for this journal entry. %s

Story: %s

Generate titles that are:
- Personal and meaningful
- Capture the essence of the day/moment
- 3-8 words long
- Emotionally resonant
- Not generic or cliché

Return as a string.

Examples of good journal titles:
- "Morning Coffee and Life-Changing Conversations"
- "The Day Everything Clicked Into Place"
- "Sunset Reflections and New Beginnings"
- "Unexpected Adventures in My Own Backyard"

Respond only with valid string.`

// GenerateTitle produces a short title for a story. The sentiment
// record, when available, steers the title toward the detected mood.
func (c *Client) GenerateTitle(ctx context.Context, story string, sentiment *domain.SentimentRecord) (string, error) {
	moodContext := ""
	if sentiment != nil && sentiment.PrimaryMood != "" {
		moodContext = fmt.Sprintf("The story has a %s mood. ", sentiment.PrimaryMood)
	}

	req := chatRequest{
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(titlePromptFormat, moodContext, story)},
		},
		MaxTokens:   200,
		Temperature: floatPtr(0.6),
	}

	title, err := c.complete(ctx, "title", req)
	if err != nil {
		return "", wrapError("title", err)
	}

	// Models often quote the title they were asked for.
	return strings.Trim(title, `"'`), nil
}
