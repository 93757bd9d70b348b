package selection

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/selection/{session}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/", h.Change)
		r.Delete("/", h.Clear)
		r.Post("/apply", h.Apply)
		r.Put("/query", h.SetQuery)
	})
}
