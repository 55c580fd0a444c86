package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/Rishi-Dave/memoirAI/internal/api"
	"github.com/Rishi-Dave/memoirAI/internal/config"
	"github.com/Rishi-Dave/memoirAI/internal/logger"
	"github.com/Rishi-Dave/memoirAI/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	aiHandle := do.MustInvoke[*AIClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	userService := do.MustInvoke[*service.UserService](i)
	entryService := do.MustInvoke[*service.EntryService](i)
	memoirService := do.MustInvoke[*service.MemoirService](i)

	services := &api.Services{
		Users:   userService,
		Entries: entryService,
		Memoir:  memoirService,
	}

	client := aiHandle.Client
	tools := &api.Tools{
		Captioner: client,
		Narrator:  client,
		Analyzer:  client,
		Titler:    client,
	}

	handler := api.NewServer(storeHandle.Store, services, tools, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
