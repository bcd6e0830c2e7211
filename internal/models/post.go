package models

import "time"

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post represents a blog post, whether authored directly, generated from an
// idea, or imported from an external feed.
type Post struct {
	ID                 int64     `json:"id"`
	Author             string    `json:"author"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	Content            string    `json:"content"`
	Excerpt            string    `json:"excerpt,omitempty"`
	Category           string    `json:"category,omitempty"`
	Status             string    `json:"status"`
	SourceURL          string    `json:"source_url,omitempty"`
	ReadingTimeMinutes int       `json:"reading_time_minutes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
