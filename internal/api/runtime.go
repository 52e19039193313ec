package api

import (
	"github.com/reqsmith/casegen/internal/config"
	"github.com/reqsmith/casegen/internal/infrastructure"
	"github.com/reqsmith/casegen/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Oracle     config.OracleConfig
	Tracker    config.TrackerConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Agent:     cfg.Agent,
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Oracle:     cfg.Oracle,
		Tracker:    cfg.Tracker,
	}
}

// Model resolves the model name recorded on generation events: the oracle
// override when set, otherwise the agent's configured model.
func (r *Runtime) Model() string {
	if r.Oracle.Model != "" {
		return r.Oracle.Model
	}
	if r.Agent.Model != nil {
		return r.Agent.Model.Name
	}
	return ""
}
