package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pomelolabs/pomelo/internal/ai"
	"github.com/pomelolabs/pomelo/internal/ingest"
	"github.com/pomelolabs/pomelo/internal/models"
	"github.com/pomelolabs/pomelo/internal/storage"
)

// statusForAIError maps the generation error taxonomy onto HTTP status codes.
// Bad input (missing parameters, unparseable or empty model output) is the
// client's problem; unavailability and transport failures point upstream.
func statusForAIError(err error) int {
	var (
		configErr    *ai.ConfigError
		parseErr     *ai.ParseError
		transportErr *ai.TransportError
	)
	switch {
	case errors.As(err, &configErr), errors.As(err, &parseErr), errors.Is(err, ai.ErrEmptyResponse):
		return http.StatusBadRequest
	case errors.Is(err, ai.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeAIError logs a generation failure and writes the mapped status code.
func writeAIError(w http.ResponseWriter, task string, err error) {
	slog.Error("generation failed", "task", task, "error", err)
	writeError(w, statusForAIError(err), err.Error())
}

// GenerateBlog handles POST /api/ai/blog. It generates a blog draft from an
// idea and, when save is true, persists it as a draft post for the given
// author.
func GenerateBlog(store *storage.Store, aiSvc *ai.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Idea   string `json:"idea"`
			Length string `json:"length"`
			Save   bool   `json:"save"`
			Author string `json:"author"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		draft, err := aiSvc.GenerateBlog(ctx, body.Idea, body.Length)
		if err != nil {
			writeAIError(w, "blog", err)
			return
		}

		if !body.Save {
			writeJSON(w, http.StatusOK, draft)
			return
		}

		author := strings.TrimSpace(body.Author)
		if author == "" {
			writeError(w, http.StatusBadRequest, "author is required to save a draft")
			return
		}

		post := &models.Post{
			Author:             author,
			Title:              draft.Title,
			Content:            draft.Content,
			Excerpt:            draft.Excerpt,
			Category:           draft.Category,
			Status:             models.PostStatusDraft,
			ReadingTimeMinutes: ingest.CalculateReadingTime(draft.Content),
		}
		if _, err := store.CreatePost(ctx, post); err != nil {
			slog.Error("failed to save generated draft", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save draft")
			return
		}

		writeJSON(w, http.StatusCreated, post)
	}
}

// EnhanceContent handles POST /api/ai/enhance.
func EnhanceContent(aiSvc *ai.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content string `json:"content"`
			Style   string `json:"style"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		enhancement, err := aiSvc.EnhanceContent(r.Context(), body.Content, body.Style)
		if err != nil {
			writeAIError(w, "enhance", err)
			return
		}

		writeJSON(w, http.StatusOK, enhancement)
	}
}

// TranslateContent handles POST /api/ai/translate.
func TranslateContent(aiSvc *ai.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content  string `json:"content"`
			Language string `json:"language"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		translation, err := aiSvc.TranslateContent(r.Context(), body.Content, body.Language)
		if err != nil {
			writeAIError(w, "translate", err)
			return
		}

		writeJSON(w, http.StatusOK, translation)
	}
}

// SuggestImages handles POST /api/ai/images.
func SuggestImages(aiSvc *ai.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		suggestions, err := aiSvc.SuggestImages(r.Context(), body.Title, body.Content)
		if err != nil {
			writeAIError(w, "images", err)
			return
		}

		writeJSON(w, http.StatusOK, suggestions)
	}
}
