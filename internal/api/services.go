package api

import (
	"github.com/Rishi-Dave/memoirAI/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Users   *service.UserService
	Entries *service.EntryService
	Memoir  *service.MemoirService
}

// Tools groups the AI collaborators exposed directly through the tool
// endpoints. In production all four are the same *ai.Client; tests
// substitute stubs per concern.
type Tools struct {
	Captioner service.Captioner
	Narrator  service.NarrativeGenerator
	Analyzer  service.SentimentAnalyzer
	Titler    service.TitleGenerator
}
