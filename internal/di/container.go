// Package di provides dependency injection configuration for the MemoirAI server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/Rishi-Dave/memoirAI/internal/config"
	"github.com/Rishi-Dave/memoirAI/internal/di/providers"
	"github.com/Rishi-Dave/memoirAI/internal/logger"
	"github.com/Rishi-Dave/memoirAI/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Model layer
	do.Provide(injector, providers.ProvideAIClient)

	// Business services
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideEntryService)
	do.Provide(injector, providers.ProvideMemoirService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.AIClientHandle](injector); err != nil {
		return err
	}

	// Business services
	if _, err := do.Invoke[*service.UserService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.EntryService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.MemoirService](injector); err != nil {
		return err
	}

	// Server last: it starts listening as soon as it is constructed
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
