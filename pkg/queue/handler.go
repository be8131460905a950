package queue

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/talonhq/talon/pkg/handlers"
	"github.com/talonhq/talon/pkg/routes"
)

// HTTPHandler exposes queue monitoring endpoints: stats, the failed-job
// bucket, and manual retry of a failed job.
type HTTPHandler struct {
	sys    System
	logger *slog.Logger
}

// NewHTTPHandler creates an HTTPHandler with the given system and logger.
func NewHTTPHandler(sys System, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{
		sys:    sys,
		logger: logger.With("handler", "queue"),
	}
}

// Routes returns the route group definition for queue endpoints.
func (h *HTTPHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/queue",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/stats", Handler: h.Stats},
			{Method: "GET", Pattern: "/failed/{type}", Handler: h.Failed},
			{Method: "POST", Pattern: "/retry/{id}", Handler: h.Retry},
		},
	}
}

// Stats returns job counts grouped by type and status.
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sys.Stats(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

// Failed returns retained failed jobs for the job type path parameter.
func (h *HTTPHandler) Failed(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	jobs, err := h.sys.Failed(r.Context(), r.PathValue("type"), limit)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, jobs)
}

// Retry requeues a failed job identified by its UUID path parameter.
func (h *HTTPHandler) Retry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	j, err := h.sys.Retry(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, j)
}

// MapHTTPStatus maps queue errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrNotFailed) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
