package api

import (
	"github.com/talonhq/talon/internal/config"
	"github.com/talonhq/talon/internal/infrastructure"
	"github.com/talonhq/talon/internal/oracle"
	"github.com/talonhq/talon/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Oracle     oracle.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Queue:     infra.Queue,
		},
		Pagination: cfg.API.Pagination,
		Oracle:     cfg.Oracle.Client(),
	}
}
