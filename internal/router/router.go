// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain for the
// FocusWord content API. Pages and posts share one handler group; the
// {kind} segment selects which table the request works on.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"focusword/internal/handlers"
	"focusword/internal/metrics"
	"focusword/internal/middleware"
)

// New creates the configured chi router. registry may be nil to disable
// the /metrics endpoint.
func New(api *handlers.API, stats *metrics.Collector, registry *prometheus.Registry) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger(stats))

	r.Get("/health", healthHandler)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))
	}

	r.Route("/api/v1/{kind:pages|posts}", func(r chi.Router) {
		r.Get("/", api.List)
		r.Delete("/", api.DeleteMany)

		r.Post("/save", api.CreateSave)
		r.Post("/publish", api.CreatePublish)
		r.Post("/publish-many", api.PublishMany)

		r.Put("/save/{draftID}", api.UpdateSave)
		r.Put("/publish/{draftID}", api.UpdatePublish)

		r.Get("/{id}", api.Get)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
