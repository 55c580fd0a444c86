package providers

import (
	"github.com/samber/do/v2"

	"github.com/Rishi-Dave/memoirAI/internal/logger"
	"github.com/Rishi-Dave/memoirAI/internal/service"
)

// ProvideUserService provides the account service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, log.Logger), nil
}

// ProvideEntryService provides the journal entry service.
func ProvideEntryService(i do.Injector) (*service.EntryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEntryService(storeHandle.Store, log.Logger), nil
}

// ProvideMemoirService provides the entry creation workflow.
func ProvideMemoirService(i do.Injector) (*service.MemoirService, error) {
	entries := do.MustInvoke[*service.EntryService](i)
	users := do.MustInvoke[*service.UserService](i)
	aiHandle := do.MustInvoke[*AIClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := aiHandle.Client
	return service.NewMemoirService(entries, users, client, client, client, client, log.Logger), nil
}
