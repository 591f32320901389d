package api

import (
	"net/http"
	"time"

	assistantapi "github.com/futig/storefront-ai/internal/api/assistant"
	"github.com/futig/storefront-ai/internal/api/docs"
	"github.com/futig/storefront-ai/internal/api/middleware"
	"github.com/futig/storefront-ai/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router.
// requestTimeout bounds a whole request, including every completion call of the chat pipeline.
func SetupRouter(assistantHandler *assistantapi.Handler, requestTimeout time.Duration, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	docs.RegisterRoutes(r)

	assistantapi.RegisterRoutes(r, assistantHandler)

	return r
}
