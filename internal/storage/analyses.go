package storage

import (
	"context"
	"fmt"

	"github.com/pomelolabs/pomelo/internal/models"
)

// CreateAnalysisRun inserts an analysis audit row and returns its ID.
func (s *Store) CreateAnalysisRun(ctx context.Context, run *models.AnalysisRun) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_runs (scope, scope_key, total_comments, summary_json)
		 VALUES (?, ?, ?, ?)`,
		run.Scope, run.ScopeKey, run.TotalComments, run.SummaryJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("creating analysis run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting analysis run id: %w", err)
	}
	return id, nil
}

// GetRecentAnalysisRuns returns the most recent analysis runs, newest first,
// limited to the given count.
func (s *Store) GetRecentAnalysisRuns(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scope, scope_key, total_comments, summary_json, created_at
		 FROM analysis_runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []models.AnalysisRun
	for rows.Next() {
		var (
			run       models.AnalysisRun
			createdAt string
		)
		if err := rows.Scan(
			&run.ID, &run.Scope, &run.ScopeKey, &run.TotalComments,
			&run.SummaryJSON, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning analysis run row: %w", err)
		}
		run.CreatedAt = parseTime(createdAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analysis run rows: %w", err)
	}
	return runs, nil
}
