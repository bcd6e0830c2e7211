package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pomelolabs/pomelo/internal/models"
)

// CreatePost inserts a post and returns its ID. The slug is derived from the
// title; on collision a numeric suffix is appended.
func (s *Store) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	slug, err := s.uniqueSlug(ctx, post.Title)
	if err != nil {
		return 0, err
	}

	status := post.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (author, title, slug, content, excerpt, category, status, source_url, reading_time_minutes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.Author, post.Title, slug, post.Content,
		nullableString(post.Excerpt), nullableString(post.Category),
		status, nullableString(post.SourceURL), post.ReadingTimeMinutes,
	)
	if err != nil {
		return 0, fmt.Errorf("creating post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting post id: %w", err)
	}
	post.ID = id
	post.Slug = slug
	return id, nil
}

// UpsertImportedPost inserts an imported post keyed by its source URL, or
// refreshes content and reading time if it was imported before. The row ID
// is returned.
func (s *Store) UpsertImportedPost(ctx context.Context, post *models.Post) (int64, error) {
	if post.SourceURL == "" {
		return 0, fmt.Errorf("upserting imported post: source URL is required")
	}

	existing, err := s.getPostIDBySourceURL(ctx, post.SourceURL)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return 0, err
	}
	if errors.Is(err, ErrNotFound) {
		return s.CreatePost(ctx, post)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE posts SET
			content              = ?,
			excerpt              = ?,
			reading_time_minutes = ?,
			updated_at           = datetime('now')
		 WHERE id = ?`,
		post.Content, nullableString(post.Excerpt), post.ReadingTimeMinutes, existing,
	)
	if err != nil {
		return 0, fmt.Errorf("updating imported post: %w", err)
	}
	post.ID = existing
	return existing, nil
}

// GetPostByID returns the post with the given ID.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, author, title, slug, content, excerpt, category, status,
				source_url, reading_time_minutes, created_at, updated_at
		 FROM posts WHERE id = ?`, id)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting post by id: %w", err)
	}
	return post, nil
}

// ListPostsByAuthor returns the author's posts, newest first.
func (s *Store) ListPostsByAuthor(ctx context.Context, author string) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author, title, slug, content, excerpt, category, status,
				source_url, reading_time_minutes, created_at, updated_at
		 FROM posts WHERE author = ?
		 ORDER BY created_at DESC, id DESC`, author)
	if err != nil {
		return nil, fmt.Errorf("querying posts by author: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating post rows: %w", err)
	}
	return posts, nil
}

// getPostIDBySourceURL returns the ID of the post imported from the given URL.
func (s *Store) getPostIDBySourceURL(ctx context.Context, sourceURL string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM posts WHERE source_url = ?`, sourceURL,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("getting post by source url: %w", err)
	}
	return id, nil
}

// uniqueSlug slugifies the title and appends "-2", "-3", ... until the slug
// does not collide with an existing post.
func (s *Store) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)

	slug := base
	for i := 2; ; i++ {
		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM posts WHERE slug = ?`, slug,
		).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", slug, err)
		}
		if exists == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases the title and replaces every non-alphanumeric run with
// a single hyphen.
func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "post"
	}
	return slug
}

// scanner is a minimal interface satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPost scans a single post row into a models.Post.
func scanPost(row scanner) (*models.Post, error) {
	var (
		post      models.Post
		excerpt   sql.NullString
		category  sql.NullString
		sourceURL sql.NullString
		createdAt string
		updatedAt string
	)

	if err := row.Scan(
		&post.ID, &post.Author, &post.Title, &post.Slug, &post.Content,
		&excerpt, &category, &post.Status, &sourceURL,
		&post.ReadingTimeMinutes, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	post.Excerpt = excerpt.String
	post.Category = category.String
	post.SourceURL = sourceURL.String
	post.CreatedAt = parseTime(createdAt)
	post.UpdatedAt = parseTime(updatedAt)

	return &post, nil
}

// nullableString converts an empty string to nil for nullable TEXT columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
