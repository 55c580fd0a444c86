package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
)

// GenerateStory weaves per-image captions and the user's own context
// into a short journal narrative in the requested tone.
func (c *Client) GenerateStory(ctx context.Context, captions []string, userContext string, tone domain.Tone) (string, error) {
	prompt := fmt.Sprintf(`Create a %s journal entry from these image descriptions:
%s
More context from the user: %s
Write a short, meaningful entry that summarizes how the user's day went.`,
		tone, strings.Join(captions, "\n"), userContext)

	req := chatRequest{
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: 300,
	}

	story, err := c.complete(ctx, "story", req)
	if err != nil {
		return "", wrapError("story", err)
	}
	return story, nil
}
