// Package ingest imports external content into the blog: RSS/Atom feeds via
// gofeed and single web pages via go-readability. Imported posts are stored
// as drafts keyed by their source URL.
package ingest

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pomelolabs/pomelo/internal/models"
)

const (
	httpTimeout    = 30 * time.Second
	rateLimitDelay = 1 * time.Second
	maxWords       = 5000
	excerptWords   = 50
)

// Importer fetches external content with per-domain rate limiting.
type Importer struct {
	client      *http.Client
	rateLimiter map[string]time.Time // per-domain last request time
	mu          sync.Mutex           // protects rateLimiter
}

// NewImporter creates an Importer with a 30-second HTTP timeout and
// browser-like request headers.
func NewImporter() *Importer {
	return &Importer{
		client: &http.Client{
			Timeout: httpTimeout,
			Transport: &headerTransport{
				base: http.DefaultTransport,
			},
		},
		rateLimiter: make(map[string]time.Time),
	}
}

// headerTransport wraps an http.RoundTripper to inject browser-like headers
// on every request. Some sites reject requests without them.
type headerTransport struct {
	base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Pomelo/1.0; +https://github.com/pomelolabs/pomelo)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	return t.base.RoundTrip(req)
}

// ImportFeed fetches and parses an RSS/Atom feed and converts its items into
// draft posts attributed to the given author. At most maxPosts items are
// returned, newest items first as ordered by the feed.
func (i *Importer) ImportFeed(ctx context.Context, feedURL, author string, maxPosts int) ([]models.Post, error) {
	i.waitForRateLimit(extractDomain(feedURL))

	fp := gofeed.NewParser()
	fp.Client = i.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", feedURL, err)
	}

	return parseFeedItems(feed, author, maxPosts), nil
}

// parseFeedItems converts gofeed items into draft posts. Items with empty
// Title or Link are skipped. At most maxPosts items are converted.
func parseFeedItems(feed *gofeed.Feed, author string, maxPosts int) []models.Post {
	var posts []models.Post
	for _, item := range feed.Items {
		if len(posts) >= maxPosts {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}
		content = stripHTML(content)

		posts = append(posts, models.Post{
			Author:             author,
			Title:              item.Title,
			Content:            content,
			Excerpt:            truncateWords(stripHTML(item.Description), excerptWords),
			Status:             models.PostStatusDraft,
			SourceURL:          item.Link,
			ReadingTimeMinutes: CalculateReadingTime(content),
		})
	}

	return posts
}

// waitForRateLimit enforces a minimum delay of 1 second between requests to
// the same domain. It blocks until the delay has elapsed.
func (i *Importer) waitForRateLimit(domain string) {
	i.mu.Lock()
	lastReq, ok := i.rateLimiter[domain]
	if ok {
		elapsed := time.Since(lastReq)
		if elapsed < rateLimitDelay {
			i.mu.Unlock()
			time.Sleep(rateLimitDelay - elapsed)
			i.mu.Lock()
		}
	}
	i.rateLimiter[domain] = time.Now()
	i.mu.Unlock()
}

// extractDomain parses a URL and returns its hostname. If parsing fails, it
// returns the raw URL as a fallback key.
func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// stripHTML removes HTML tags from s and unescapes HTML entities.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return html.UnescapeString(clean)
}
