package ingest

import (
	"fmt"
	"net/http"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/pomelolabs/pomelo/internal/models"
)

// browserHeaders sets browser-like request headers so sites that check Accept
// or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Pomelo/1.0; +https://github.com/pomelolabs/pomelo)")
}

// ImportURL fetches the page at the given URL, extracts its main readable
// text with go-readability, and converts it into a draft post attributed to
// the given author. The text is truncated to 5000 words maximum.
func (i *Importer) ImportURL(pageURL, author string) (*models.Post, error) {
	i.waitForRateLimit(extractDomain(pageURL))

	article, err := readability.FromURL(pageURL, httpTimeout, browserHeaders)
	if err != nil {
		return nil, fmt.Errorf("extracting article from %q: %w", pageURL, err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = pageURL
	}
	content := truncateWords(article.TextContent, maxWords)

	return &models.Post{
		Author:             author,
		Title:              title,
		Content:            content,
		Excerpt:            truncateWords(article.Excerpt, excerptWords),
		Status:             models.PostStatusDraft,
		SourceURL:          pageURL,
		ReadingTimeMinutes: CalculateReadingTime(content),
	}, nil
}

// truncateWords returns the first maxWords whitespace-delimited words from s.
// If s contains fewer than maxWords words, it is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
