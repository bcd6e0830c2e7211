package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pomelolabs/pomelo/internal/models"
	"github.com/pomelolabs/pomelo/internal/storage"
)

// CreateComment handles POST /api/comments. It accepts a JSON body with
// post_id, author, and content, and returns the created comment.
func CreateComment(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			PostID  int64  `json:"post_id"`
			Author  string `json:"author"`
			Content string `json:"content"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if strings.TrimSpace(body.Author) == "" {
			writeError(w, http.StatusBadRequest, "author is required")
			return
		}
		if strings.TrimSpace(body.Content) == "" {
			writeError(w, http.StatusBadRequest, "content is required")
			return
		}

		if _, err := store.GetPostByID(ctx, body.PostID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Post not found")
				return
			}
			slog.Error("failed to look up post", "post_id", body.PostID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create comment")
			return
		}

		comment := &models.Comment{
			PostID:  body.PostID,
			Author:  body.Author,
			Content: body.Content,
		}
		if _, err := store.CreateComment(ctx, comment); err != nil {
			slog.Error("failed to create comment", "post_id", body.PostID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create comment")
			return
		}

		writeJSON(w, http.StatusCreated, comment)
	}
}

// GetPostComments handles GET /api/posts/{id}/comments. It returns the post's
// comments, newest first.
func GetPostComments(store *storage.Store) http.HandlerFunc {
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
			writeError(w, http.StatusInternalServerError, "Failed to get comments")
			return
		}

		comments, err := store.GetCommentsByPost(ctx, postID)
		if err != nil {
			slog.Error("failed to get comments", "post_id", postID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get comments")
			return
		}
		if comments == nil {
			comments = []models.Comment{}
		}

		writeJSON(w, http.StatusOK, comments)
	}
}
