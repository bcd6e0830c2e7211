package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/pomelolabs/pomelo/internal/models"
)

// CreateComment inserts a comment and returns its ID. Returns a descriptive
// error if the post does not exist.
func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (post_id, author, content) VALUES (?, ?, ?)`,
		comment.PostID, comment.Author, comment.Content,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return 0, fmt.Errorf("post %d does not exist", comment.PostID)
		}
		return 0, fmt.Errorf("creating comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting comment id: %w", err)
	}
	comment.ID = id
	return id, nil
}

// GetCommentsByPost returns all comments on a post, newest first.
func (s *Store) GetCommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, post_id, author, content, created_at
		 FROM comments WHERE post_id = ?
		 ORDER BY created_at DESC, id DESC`, postID)
	if err != nil {
		return nil, fmt.Errorf("querying comments by post: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var (
			c         models.Comment
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comment rows: %w", err)
	}
	return comments, nil
}

// GetCommentTextsByPost returns the raw content of every comment on a post,
// in insertion order. This is the text stream the analysis pipeline consumes.
func (s *Store) GetCommentTextsByPost(ctx context.Context, postID int64) ([]string, error) {
	return s.commentTexts(ctx,
		`SELECT content FROM comments WHERE post_id = ? ORDER BY id`, postID)
}

// GetCommentTextsByAuthor returns the content of every comment left on any
// post written by the given author, in insertion order.
func (s *Store) GetCommentTextsByAuthor(ctx context.Context, author string) ([]string, error) {
	return s.commentTexts(ctx,
		`SELECT c.content
		 FROM comments c
		 JOIN posts p ON p.id = c.post_id
		 WHERE p.author = ?
		 ORDER BY c.id`, author)
}

func (s *Store) commentTexts(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comment texts: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scanning comment text: %w", err)
		}
		texts = append(texts, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comment texts: %w", err)
	}
	return texts, nil
}
