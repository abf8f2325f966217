package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes builds the router. gatherer backs /metrics and may be nil to
// use the default registry.
func (h *Handler) RegisterRoutes(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewSlogLogger(h.logger))
	r.Use(h.metrics.Instrument)
	r.Use(middleware.Recoverer)

	r.Route("/team", func(r chi.Router) {
		r.Post("/add", h.handleAddTeam)
		r.Get("/get", h.handleGetTeam)
		r.Get("/list", h.handleListTeams)
		r.Get("/transferList", h.handleTransferList)
		r.Post("/saveMembers", h.handleSaveTeamMembers)
	})

	r.Route("/members", func(r chi.Router) {
		r.Post("/add", h.handleAddMember)
		r.Get("/list", h.handleListMembers)
		r.Post("/assign", h.handleAssignMember)
		r.Post("/unassign", h.handleUnassignMember)
	})

	r.Get("/health", h.handleHealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

func (h *Handler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
