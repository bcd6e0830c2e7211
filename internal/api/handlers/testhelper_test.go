package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pomelolabs/pomelo/internal/models"
	"github.com/pomelolabs/pomelo/internal/storage"
)

// newTestStore creates an in-memory SQLite store with migrations applied. It
// registers a cleanup function to close the database when the test completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return storage.NewStore(db)
}

// seedPost inserts a post and returns its ID.
func seedPost(t *testing.T, store *storage.Store, author, title string) int64 {
	t.Helper()
	id, err := store.CreatePost(context.Background(), &models.Post{
		Author:  author,
		Title:   title,
		Content: "Post body.",
	})
	if err != nil {
		t.Fatalf("seeding post: %v", err)
	}
	return id
}

// seedComment inserts a comment on the given post.
func seedComment(t *testing.T, store *storage.Store, postID int64, content string) {
	t.Helper()
	_, err := store.CreateComment(context.Background(), &models.Comment{
		PostID:  postID,
		Author:  "reader",
		Content: content,
	})
	if err != nil {
		t.Fatalf("seeding comment: %v", err)
	}
}

// withURLParam attaches a chi URL parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
