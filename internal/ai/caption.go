package ai

import (
	"context"
	"fmt"
)

const captionPrompt = `Describe this image in blunt detail for journaling purposes. Focus on the emotions, setting, people, action, and memorable moments captured.
Do not add your own description, just analyze the image itself.
IMPORTANT: Each caption should only be 1-2 concise sentences.`

// Caption describes a single base64-encoded image in one or two
// sentences. format is the image format without the "image/" prefix,
// e.g. "jpeg" or "png".
func (c *Client) Caption(ctx context.Context, imageBase64, format string) (string, error) {
	req := chatRequest{
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: captionPrompt},
					{Type: "image_url", ImageURL: &imageURL{
						URL: fmt.Sprintf("data:image/%s;base64,%s", format, imageBase64),
					}},
				},
			},
		},
		MaxTokens: 300,
	}

	caption, err := c.complete(ctx, "caption", req)
	if err != nil {
		return "", wrapError("caption", err)
	}
	return caption, nil
}
