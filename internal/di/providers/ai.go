package providers

import (
	"github.com/samber/do/v2"

	"github.com/Rishi-Dave/memoirAI/internal/ai"
	"github.com/Rishi-Dave/memoirAI/internal/config"
	"github.com/Rishi-Dave/memoirAI/internal/logger"
)

// AIClientHandle wraps the model client with shutdown capability.
type AIClientHandle struct {
	*ai.Client
}

// Shutdown implements do.Shutdownable.
func (h *AIClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideAIClient provides the OpenAI-compatible model client.
func ProvideAIClient(i do.Injector) (*AIClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := ai.New(cfg.AI, log.Logger)

	log.Info("AI client initialized",
		"base_url", cfg.AI.BaseURL,
		"model", cfg.AI.Model,
	)

	return &AIClientHandle{Client: client}, nil
}
