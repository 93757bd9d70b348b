package chat

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/chat", h.HandleChat)

	r.Route("/api/threads", func(r chi.Router) {
		r.Post("/", h.CreateThread)
		r.Get("/{threadID}/messages", h.ListMessages)
		r.Post("/{threadID}/messages", h.SubmitMessage)
	})
}
