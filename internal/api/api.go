// Package api assembles the API module with all domain systems, worker
// registration, and route wiring.
package api

import (
	"net/http"

	"github.com/talonhq/talon/internal/config"
	"github.com/talonhq/talon/internal/infrastructure"
	"github.com/talonhq/talon/internal/workers"
	"github.com/talonhq/talon/pkg/middleware"
	"github.com/talonhq/talon/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware,
// and registers the queue consumers that drive the evaluation pipeline.
// Consumers must be registered before the infrastructure queue starts.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	workers.Register(workers.Runtime{
		Queue:       runtime.Queue,
		Resumes:     domain.Resumes,
		Evaluations: domain.Evaluations,
		HiringForms: domain.HiringForms,
		Prompts:     domain.Prompts,
		Scorer:      domain.Scorer,
		Logger:      runtime.Logger,
	}, cfg.Workers.ParseConcurrency, cfg.Workers.EvaluateConcurrency)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
