package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pomelolabs/pomelo/internal/models"
	"github.com/pomelolabs/pomelo/internal/sentiment"
	"github.com/pomelolabs/pomelo/internal/storage"
)

// analysisResponse is the common payload for the analysis endpoints: the
// collection summary plus the per-comment result pairs.
type analysisResponse struct {
	Summary  sentiment.Summary           `json:"summary"`
	Comments []sentiment.CommentAnalysis `json:"comments"`
}

// PostAnalysis handles GET /api/posts/{id}/analysis. It analyzes every
// comment on the post and returns the distribution summary together with the
// per-comment sentiment and importance results.
func PostAnalysis(store *storage.Store, analyzer *sentiment.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		postID, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid post ID")
			return
		}

		if _, err := store.GetPostByID(ctx, postID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Post not found")
				return
			}
			slog.Error("failed to look up post", "post_id", postID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to analyze comments")
			return
		}

		texts, err := store.GetCommentTextsByPost(ctx, postID)
		if err != nil {
			slog.Error("failed to get comment texts", "post_id", postID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to analyze comments")
			return
		}

		resp := analyze(analyzer, texts)
		recordAnalysisRun(ctx, store, "post", strconv.FormatInt(postID, 10), resp.Summary)

		writeJSON(w, http.StatusOK, resp)
	}
}

// AuthorAnalysis handles GET /api/authors/{author}/analysis. It aggregates
// over every comment left on any of the author's posts.
func AuthorAnalysis(store *storage.Store, analyzer *sentiment.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		author := chi.URLParam(r, "author")
		if author == "" {
			writeError(w, http.StatusBadRequest, "Missing author")
			return
		}

		posts, err := store.ListPostsByAuthor(ctx, author)
		if err != nil {
			slog.Error("failed to list posts", "author", author, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to analyze comments")
			return
		}
		if len(posts) == 0 {
			writeError(w, http.StatusNotFound, "Author not found")
			return
		}

		texts, err := store.GetCommentTextsByAuthor(ctx, author)
		if err != nil {
			slog.Error("failed to get comment texts", "author", author, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to analyze comments")
			return
		}

		resp := analyze(analyzer, texts)
		recordAnalysisRun(ctx, store, "author", author, resp.Summary)

		writeJSON(w, http.StatusOK, resp)
	}
}

// PreviewAnalysis handles POST /api/analysis/preview. It analyzes ad-hoc
// texts supplied in the request body without persisting any comments.
func PreviewAnalysis(store *storage.Store, analyzer *sentiment.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Texts []string `json:"texts"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		resp := analyze(analyzer, body.Texts)
		recordAnalysisRun(ctx, store, "preview", "", resp.Summary)

		writeJSON(w, http.StatusOK, resp)
	}
}

// Bounds for the recent-runs listing.
const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// RecentAnalysisRuns handles GET /api/analysis/runs. It returns the most
// recent audit rows, newest first. The optional limit query parameter caps
// the count.
func RecentAnalysisRuns(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRunsLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "Invalid limit")
				return
			}
			limit = min(n, maxRunsLimit)
		}

		runs, err := store.GetRecentAnalysisRuns(r.Context(), limit)
		if err != nil {
			slog.Error("failed to list analysis runs", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list analysis runs")
			return
		}
		if runs == nil {
			runs = []models.AnalysisRun{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
	}
}

// analyze scores the texts once and derives the summary from the same
// per-comment results. The comments slice is never nil so the JSON response
// always carries an array.
func analyze(analyzer *sentiment.Analyzer, texts []string) analysisResponse {
	analyses := analyzer.AnalyzeAll(texts)
	if analyses == nil {
		analyses = []sentiment.CommentAnalysis{}
	}
	return analysisResponse{
		Summary:  sentiment.SummarizeAnalyses(analyses),
		Comments: analyses,
	}
}

// recordAnalysisRun persists an audit row for a completed analysis. Audit
// failures are logged and do not affect the response.
func recordAnalysisRun(ctx context.Context, store *storage.Store, scope, scopeKey string, summary sentiment.Summary) {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		slog.Error("failed to marshal analysis summary", "scope", scope, "error", err)
		return
	}

	_, err = store.CreateAnalysisRun(ctx, &models.AnalysisRun{
		Scope:         scope,
		ScopeKey:      scopeKey,
		TotalComments: summary.TotalComments,
		SummaryJSON:   string(summaryJSON),
	})
	if err != nil {
		slog.Error("failed to record analysis run", "scope", scope, "error", err)
	}
}
