package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pomelolabs/pomelo/internal/models"
	"github.com/pomelolabs/pomelo/internal/sentiment"
	"github.com/pomelolabs/pomelo/internal/storage"
)

// seedAnalysisRun inserts an audit row directly, bypassing the handlers.
func seedAnalysisRun(t *testing.T, store *storage.Store, scope, scopeKey string, total int) {
	t.Helper()
	_, err := store.CreateAnalysisRun(context.Background(), &models.AnalysisRun{
		Scope:         scope,
		ScopeKey:      scopeKey,
		TotalComments: total,
		SummaryJSON:   "{}",
	})
	if err != nil {
		t.Fatalf("seeding analysis run: %v", err)
	}
}

func decodeAnalysis(t *testing.T, w *httptest.ResponseRecorder) analysisResponse {
	t.Helper()
	var resp analysisResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

// requireAuditRun asserts that exactly one analysis run with the given scope
// and key was recorded.
func requireAuditRun(t *testing.T, store *storage.Store, scope, scopeKey string, total int) {
	t.Helper()
	runs, err := store.GetRecentAnalysisRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("reading analysis runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d analysis runs, want 1", len(runs))
	}
	run := runs[0]
	if run.Scope != scope || run.ScopeKey != scopeKey {
		t.Errorf("run scope = %q/%q, want %q/%q", run.Scope, run.ScopeKey, scope, scopeKey)
	}
	if run.TotalComments != total {
		t.Errorf("run.TotalComments = %d, want %d", run.TotalComments, total)
	}
}

func TestPostAnalysis(t *testing.T) {
	store := newTestStore(t)
	analyzer := sentiment.NewAnalyzer()
	postID := seedPost(t, store, "alice", "Analyzed Post")

	seedComment(t, store, postID, "I love this post, it is absolutely amazing!")
	seedComment(t, store, postID, "This is horrible, I hate it.")
	seedComment(t, store, postID, "The post was published on a Monday.")

	r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/posts/%d/analysis", postID), nil)
	r = withURLParam(r, "id", fmt.Sprint(postID))
	w := httptest.NewRecorder()

	PostAnalysis(store, analyzer).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	resp := decodeAnalysis(t, w)
	if resp.Summary.TotalComments != 3 {
		t.Errorf("TotalComments = %d, want 3", resp.Summary.TotalComments)
	}
	if resp.Summary.PositiveCount != 1 || resp.Summary.NegativeCount != 1 || resp.Summary.NeutralCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1",
			resp.Summary.PositiveCount, resp.Summary.NegativeCount, resp.Summary.NeutralCount)
	}
	if len(resp.Comments) != 3 {
		t.Errorf("got %d comment analyses, want 3", len(resp.Comments))
	}

	requireAuditRun(t, store, "post", fmt.Sprint(postID), 3)
}

func TestPostAnalysis_NoComments(t *testing.T) {
	store := newTestStore(t)
	analyzer := sentiment.NewAnalyzer()
	postID := seedPost(t, store, "alice", "Quiet Post")

	r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/posts/%d/analysis", postID), nil)
	r = withURLParam(r, "id", fmt.Sprint(postID))
	w := httptest.NewRecorder()

	PostAnalysis(store, analyzer).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	resp := decodeAnalysis(t, w)
	if resp.Summary.TotalComments != 0 {
		t.Errorf("TotalComments = %d, want 0", resp.Summary.TotalComments)
	}
	if resp.Summary.PositivePercentage != 0 {
		t.Errorf("PositivePercentage = %v, want 0", resp.Summary.PositivePercentage)
	}
	if len(resp.Comments) != 0 {
		t.Errorf("got %d comment analyses, want 0", len(resp.Comments))
	}
}

func TestPostAnalysis_NotFound(t *testing.T) {
	store := newTestStore(t)
	analyzer := sentiment.NewAnalyzer()

	r := httptest.NewRequest(http.MethodGet, "/api/posts/99999/analysis", nil)
	r = withURLParam(r, "id", "99999")
	w := httptest.NewRecorder()

	PostAnalysis(store, analyzer).ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAuthorAnalysis(t *testing.T) {
	store := newTestStore(t)
	analyzer := sentiment.NewAnalyzer()

	post1 := seedPost(t, store, "alice", "First Post")
	post2 := seedPost(t, store, "alice", "Second Post")
	other := seedPost(t, store, "bob", "Other Post")

	seedComment(t, store, post1, "I love this post, it is absolutely amazing!")
	seedComment(t, store, post2, "The post was published on a Monday.")
	seedComment(t, store, other, "This is horrible, I hate it.")

	r := httptest.NewRequest(http.MethodGet, "/api/authors/alice/analysis", nil)
	r = withURLParam(r, "author", "alice")
	w := httptest.NewRecorder()

	AuthorAnalysis(store, analyzer).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	resp := decodeAnalysis(t, w)
	if resp.Summary.TotalComments != 2 {
		t.Errorf("TotalComments = %d, want 2 (bob's comment must be excluded)", resp.Summary.TotalComments)
	}
	if resp.Summary.NegativeCount != 0 {
		t.Errorf("NegativeCount = %d, want 0", resp.Summary.NegativeCount)
	}

	requireAuditRun(t, store, "author", "alice", 2)
}

func TestAuthorAnalysis_UnknownAuthor(t *testing.T) {
	store := newTestStore(t)
	analyzer := sentiment.NewAnalyzer()

	r := httptest.NewRequest(http.MethodGet, "/api/authors/ghost/analysis", nil)
	r = withURLParam(r, "author", "ghost")
	w := httptest.NewRecorder()

	AuthorAnalysis(store, analyzer).ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestPreviewAnalysis(t *testing.T) {
	store := newTestStore(t)
	analyzer := sentiment.NewAnalyzer()

	body := `{"texts": ["I love this post, it is absolutely amazing!", "The post was published on a Monday."]}`
	r := httptest.NewRequest(http.MethodPost, "/api/analysis/preview", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	PreviewAnalysis(store, analyzer).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	resp := decodeAnalysis(t, w)
	if resp.Summary.TotalComments != 2 {
		t.Errorf("TotalComments = %d, want 2", resp.Summary.TotalComments)
	}
	if resp.Summary.PositiveCount != 1 {
		t.Errorf("PositiveCount = %d, want 1", resp.Summary.PositiveCount)
	}
	if len(resp.Comments) != 2 {
		t.Errorf("got %d comment analyses, want 2", len(resp.Comments))
	}

	requireAuditRun(t, store, "preview", "", 2)
}

func TestPreviewAnalysis_EmptyTexts(t *testing.T) {
	store := newTestStore(t)
	analyzer := sentiment.NewAnalyzer()

	r := httptest.NewRequest(http.MethodPost, "/api/analysis/preview", bytes.NewBufferString(`{"texts": []}`))
	w := httptest.NewRecorder()

	PreviewAnalysis(store, analyzer).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	resp := decodeAnalysis(t, w)
	if resp.Summary.TotalComments != 0 {
		t.Errorf("TotalComments = %d, want 0", resp.Summary.TotalComments)
	}
}

func TestRecentAnalysisRuns(t *testing.T) {
	store := newTestStore(t)

	seedAnalysisRun(t, store, "post", "1", 3)
	seedAnalysisRun(t, store, "author", "alice", 2)
	seedAnalysisRun(t, store, "preview", "", 5)

	r := httptest.NewRequest(http.MethodGet, "/api/analysis/runs", nil)
	w := httptest.NewRecorder()

	RecentAnalysisRuns(store).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Runs []models.AnalysisRun `json:"runs"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(resp.Runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(resp.Runs))
	}
	if resp.Runs[0].Scope != "preview" {
		t.Errorf("newest run scope = %q, want \"preview\"", resp.Runs[0].Scope)
	}
	if resp.Runs[2].Scope != "post" || resp.Runs[2].ScopeKey != "1" {
		t.Errorf("oldest run = %q/%q, want \"post\"/\"1\"", resp.Runs[2].Scope, resp.Runs[2].ScopeKey)
	}
}

func TestRecentAnalysisRuns_Limit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		seedAnalysisRun(t, store, "preview", "", i)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/analysis/runs?limit=2", nil)
	w := httptest.NewRecorder()

	RecentAnalysisRuns(store).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Runs []models.AnalysisRun `json:"runs"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Runs) != 2 {
		t.Errorf("got %d runs, want 2", len(resp.Runs))
	}
}

func TestRecentAnalysisRuns_InvalidLimit(t *testing.T) {
	store := newTestStore(t)

	for _, raw := range []string{"abc", "0", "-1"} {
		r := httptest.NewRequest(http.MethodGet, "/api/analysis/runs?limit="+raw, nil)
		w := httptest.NewRecorder()

		RecentAnalysisRuns(store).ServeHTTP(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%q: got status %d, want %d", raw, w.Code, http.StatusBadRequest)
		}
	}
}

func TestRecentAnalysisRuns_Empty(t *testing.T) {
	store := newTestStore(t)

	r := httptest.NewRequest(http.MethodGet, "/api/analysis/runs", nil)
	w := httptest.NewRecorder()

	RecentAnalysisRuns(store).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if body := w.Body.String(); !bytes.Contains([]byte(body), []byte(`"runs":[]`)) {
		t.Errorf("body = %s, want an empty runs array", body)
	}
}

func TestPreviewAnalysis_InvalidJSON(t *testing.T) {
	store := newTestStore(t)
	analyzer := sentiment.NewAnalyzer()

	r := httptest.NewRequest(http.MethodPost, "/api/analysis/preview", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	PreviewAnalysis(store, analyzer).ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}
