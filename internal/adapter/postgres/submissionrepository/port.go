package submissionrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

const submissionColumns = `id, user_id, question_id, code, language, status,
			   runtime_ms, memory_mb, test_case_results, created_at`

type submissionRow struct {
	ID              uuid.UUID     `db:"id"`
	UserID          uuid.UUID     `db:"user_id"`
	QuestionID      uuid.UUID     `db:"question_id"`
	Code            string        `db:"code"`
	Language        string        `db:"language"`
	Status          domain.Status `db:"status"`
	Runtime         float64       `db:"runtime_ms"`
	Memory          float64       `db:"memory_mb"`
	TestCaseResults []byte        `db:"test_case_results"`
	CreatedAt       time.Time     `db:"created_at"`
}

func (row *submissionRow) toDomain() (*domain.Submission, error) {
	s := &domain.Submission{
		ID:         row.ID,
		UserID:     row.UserID,
		QuestionID: row.QuestionID,
		Code:       row.Code,
		Language:   row.Language,
		Status:     row.Status,
		Runtime:    row.Runtime,
		Memory:     row.Memory,
		CreatedAt:  row.CreatedAt,
	}
	if err := json.Unmarshal(row.TestCaseResults, &s.TestCaseResults); err != nil {
		return nil, fmt.Errorf("failed to decode results of %s: %w", row.ID, err)
	}
	return s, nil
}

// SubmissionRepository stores judged submissions in PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	table  string
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		table:  schema + ".submissions",
	}
}

// SaveSubmission inserts a submission. Results are expected to be redacted
// already.
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, s *domain.Submission) error {
	results := s.TestCaseResults
	if results == nil {
		results = []domain.TestCaseResult{}
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal test case results: %w", err)
	}

	query := `
		INSERT INTO ` + r.table + ` (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.QuestionID,
		s.Code,
		s.Language,
		s.Status,
		s.Runtime,
		s.Memory,
		resultsJSON,
		s.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save submission", "submissionId", s.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// GetSubmission retrieves a submission by ID
func (r *SubmissionRepository) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM ` + r.table + ` WHERE id = $1`

	var row submissionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "submissionId", id, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return row.toDomain()
}

// ListSubmissions returns a user's submissions, newest first
func (r *SubmissionRepository) ListSubmissions(ctx context.Context, userID uuid.UUID, questionID *uuid.UUID, limit int) ([]*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM ` + r.table + `
		WHERE user_id = $1 AND ($2::uuid IS NULL OR question_id = $2)
		ORDER BY created_at DESC
		LIMIT $3`

	// LIMIT NULL means no limit
	var lim interface{}
	if limit > 0 {
		lim = limit
	}

	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, questionID, lim); err != nil {
		r.logger.Error("Failed to list submissions", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	out := make([]*domain.Submission, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
