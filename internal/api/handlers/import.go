package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pomelolabs/pomelo/internal/config"
	"github.com/pomelolabs/pomelo/internal/ingest"
	"github.com/pomelolabs/pomelo/internal/models"
	"github.com/pomelolabs/pomelo/internal/storage"
)

// validateImportRequest checks the shared url/author body fields.
func validateImportRequest(rawURL, author string) (string, bool) {
	if strings.TrimSpace(author) == "" {
		return "author is required", false
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "a valid http(s) url is required", false
	}
	return "", true
}

// ImportURL handles POST /api/import/url. It extracts the readable text from
// a web page and stores it as a draft post keyed by the source URL.
func ImportURL(store *storage.Store, importer *ingest.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			URL    string `json:"url"`
			Author string `json:"author"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg, ok := validateImportRequest(body.URL, body.Author); !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		post, err := importer.ImportURL(body.URL, body.Author)
		if err != nil {
			slog.Error("failed to import url", "url", body.URL, "error", err)
			writeError(w, http.StatusBadGateway, "Failed to extract content from URL")
			return
		}

		if _, err := store.UpsertImportedPost(ctx, post); err != nil {
			slog.Error("failed to save imported post", "url", body.URL, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save imported post")
			return
		}

		writeJSON(w, http.StatusCreated, post)
	}
}

// ImportFeed handles POST /api/import/feed. It parses an RSS/Atom feed and
// stores its items as draft posts, refreshing any previously imported items.
func ImportFeed(store *storage.Store, importer *ingest.Importer, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			URL    string `json:"url"`
			Author string `json:"author"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg, ok := validateImportRequest(body.URL, body.Author); !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		posts, err := importer.ImportFeed(ctx, body.URL, body.Author, cfg.Import.MaxPostsPerFeed)
		if err != nil {
			slog.Error("failed to import feed", "url", body.URL, "error", err)
			writeError(w, http.StatusBadGateway, "Failed to fetch feed")
			return
		}

		saved := make([]models.Post, 0, len(posts))
		for i := range posts {
			if _, err := store.UpsertImportedPost(ctx, &posts[i]); err != nil {
				slog.Warn("failed to save feed item",
					"url", posts[i].SourceURL,
					"error", err,
				)
				continue
			}
			saved = append(saved, posts[i])
		}

		slog.Info("imported feed", "url", body.URL, "items", len(saved))
		writeJSON(w, http.StatusCreated, map[string]any{
			"imported": len(saved),
			"posts":    saved,
		})
	}
}
