package assistant

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers assistant routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/ollama", func(r chi.Router) {
		r.Get("/", h.Generate)
		r.Get("/genaireview/{id}", h.AnalyzeReviews)
		r.Get("/genaireview/{id}/report", h.ReviewReport)
		r.Post("/productsuggestion", h.SuggestProducts)
	})
}
