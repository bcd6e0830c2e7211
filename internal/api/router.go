// Package api wires the HTTP surface: routing, middleware, and handlers.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pomelolabs/pomelo/internal/ai"
	"github.com/pomelolabs/pomelo/internal/api/handlers"
	"github.com/pomelolabs/pomelo/internal/config"
	"github.com/pomelolabs/pomelo/internal/ingest"
	"github.com/pomelolabs/pomelo/internal/sentiment"
	"github.com/pomelolabs/pomelo/internal/storage"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(store *storage.Store, analyzer *sentiment.Analyzer, aiSvc *ai.Service, importer *ingest.Importer, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Route("/api", func(api chi.Router) {
		api.Post("/comments", handlers.CreateComment(store))
		api.Get("/posts/{id}/comments", handlers.GetPostComments(store))

		api.Get("/posts/{id}/analysis", handlers.PostAnalysis(store, analyzer))
		api.Get("/authors/{author}/analysis", handlers.AuthorAnalysis(store, analyzer))
		api.Post("/analysis/preview", handlers.PreviewAnalysis(store, analyzer))
		api.Get("/analysis/runs", handlers.RecentAnalysisRuns(store))

		api.Post("/ai/blog", handlers.GenerateBlog(store, aiSvc))
		api.Post("/ai/enhance", handlers.EnhanceContent(aiSvc))
		api.Post("/ai/translate", handlers.TranslateContent(aiSvc))
		api.Post("/ai/images", handlers.SuggestImages(aiSvc))

		api.Post("/import/url", handlers.ImportURL(store, importer))
		api.Post("/import/feed", handlers.ImportFeed(store, importer, cfg))
	})

	return r
}
