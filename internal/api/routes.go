package api

import (
	"net/http"

	"github.com/talonhq/talon/pkg/queue"
	"github.com/talonhq/talon/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Resumes.Handler().Routes(),
		domain.Evaluations.Handler().Routes(),
		domain.HiringForms.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
		domain.Audit.Handler().Routes(),
		queue.NewHTTPHandler(runtime.Queue, runtime.Logger).Routes(),
	)
}
