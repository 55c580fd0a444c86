package ai

import (
	"context"
	"encoding/json/v2"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi-Dave/memoirAI/internal/config"
	"github.com/Rishi-Dave/memoirAI/internal/domain"
)

// newTestClient points a client at a stub completions server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(config.AIConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		Model:          "gpt-4o",
		RequestTimeout: 5 * time.Second,
		RPS:            100,
		Burst:          100,
	}, nil)
	t.Cleanup(client.Close)

	return client
}

// completionHandler returns a handler that responds with the given content.
func completionHandler(t *testing.T, content string, capture *chatRequest) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if capture != nil {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, capture))
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		data, err := json.Marshal(resp)
		require.NoError(t, err)
		_, _ = w.Write(data)
	}
}

func TestCaption(t *testing.T) {
	var captured chatRequest
	client := newTestClient(t, completionHandler(t, "A child laughs on a sunlit beach.", &captured))

	caption, err := client.Caption(context.Background(), "aGVsbG8=", "jpeg")
	require.NoError(t, err)
	assert.Equal(t, "A child laughs on a sunlit beach.", caption)

	assert.Equal(t, "gpt-4o", captured.Model)
	require.Len(t, captured.Messages, 1)

	// The image travels as a data URL content part.
	parts, ok := captured.Messages[0].Content.([]any)
	require.True(t, ok)
	require.Len(t, parts, 2)
	imagePart, ok := parts[1].(map[string]any)
	require.True(t, ok)
	urlField, ok := imagePart["image_url"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", urlField["url"])
}

func TestGenerateStory(t *testing.T) {
	var captured chatRequest
	client := newTestClient(t, completionHandler(t, "Today was a gentle day by the sea.", &captured))

	story, err := client.GenerateStory(context.Background(),
		[]string{"A beach at dawn.", "Two friends sharing coffee."},
		"our last day of vacation",
		domain.ToneNostalgic,
	)
	require.NoError(t, err)
	assert.Equal(t, "Today was a gentle day by the sea.", story)

	prompt, ok := captured.Messages[0].Content.(string)
	require.True(t, ok)
	assert.Contains(t, prompt, "nostalgic")
	assert.Contains(t, prompt, "A beach at dawn.")
	assert.Contains(t, prompt, "our last day of vacation")
}

func TestAnalyzeSentiment(t *testing.T) {
	content := `{"primary_mood":"joyful","secondary_moods":["grateful"],"emotional_intensity":7,"themes":["family"],"overall_sentiment":"positive"}`
	client := newTestClient(t, completionHandler(t, content, nil))

	record, err := client.AnalyzeSentiment(context.Background(), "What a wonderful day with the family.")
	require.NoError(t, err)
	assert.Equal(t, "joyful", record.PrimaryMood)
	assert.Equal(t, []string{"grateful"}, record.SecondaryMoods)
	assert.Equal(t, 7, record.EmotionalIntensity)
	assert.Equal(t, domain.SentimentPositive, record.OverallSentiment)
}

func TestAnalyzeSentiment_ToleratesCodeFence(t *testing.T) {
	content := "```json\n{\"primary_mood\":\"peaceful\",\"emotional_intensity\":4,\"overall_sentiment\":\"positive\"}\n```"
	client := newTestClient(t, completionHandler(t, content, nil))

	record, err := client.AnalyzeSentiment(context.Background(), "A calm walk.")
	require.NoError(t, err)
	assert.Equal(t, "peaceful", record.PrimaryMood)
}

func TestAnalyzeSentiment_MalformedJSON(t *testing.T) {
	client := newTestClient(t, completionHandler(t, "I could not analyze that.", nil))

	_, err := client.AnalyzeSentiment(context.Background(), "A story.")
	assert.ErrorIs(t, err, ErrMalformedAnalysis)
}

func TestAnalyzeSentiment_RejectsUnknownMood(t *testing.T) {
	content := `{"primary_mood":"ecstatic","emotional_intensity":7,"overall_sentiment":"positive"}`
	client := newTestClient(t, completionHandler(t, content, nil))

	_, err := client.AnalyzeSentiment(context.Background(), "A story.")
	assert.ErrorIs(t, err, ErrMalformedAnalysis)
}

func TestGenerateTitle(t *testing.T) {
	var captured chatRequest
	client := newTestClient(t, completionHandler(t, `"Sunset Reflections and New Beginnings"`, &captured))

	title, err := client.GenerateTitle(context.Background(), "A story.", &domain.SentimentRecord{PrimaryMood: "reflective"})
	require.NoError(t, err)
	// Surrounding quotes are stripped.
	assert.Equal(t, "Sunset Reflections and New Beginnings", title)

	prompt, ok := captured.Messages[0].Content.(string)
	require.True(t, ok)
	assert.Contains(t, prompt, "reflective mood")
}

func TestCompleteStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"server error", http.StatusInternalServerError, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.Caption(context.Background(), "aGVsbG8=", "png")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.GenerateStory(context.Background(), []string{"a caption"}, "", domain.DefaultTone)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with language", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.input))
		})
	}
}
