package reference

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/catalog", h.ListEntries)
	r.Get("/api/catalog/{viewID}", h.GetView)

	r.Route("/api/drawer/{session}", func(r chi.Router) {
		r.Get("/", h.GetDrawer)
		r.Post("/", h.OpenDrawer)
		r.Post("/drill", h.DrillDrawer)
		r.Post("/back", h.BackDrawer)
		r.Delete("/", h.CloseDrawer)
	})
}
