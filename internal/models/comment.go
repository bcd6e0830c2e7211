package models

import "time"

// Comment is a reader comment on a post. The intelligence pipeline treats
// its content as an opaque, read-only text stream.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisRun records an audit trail of each dashboard analysis: what scope
// was analyzed, over how many comments, and the resulting distribution
// snapshot as JSON.
type AnalysisRun struct {
	ID            int64     `json:"id"`
	Scope         string    `json:"scope"` // "post" | "author" | "preview"
	ScopeKey      string    `json:"scope_key"`
	TotalComments int       `json:"total_comments"`
	SummaryJSON   string    `json:"summary_json"`
	CreatedAt     time.Time `json:"created_at"`
}
