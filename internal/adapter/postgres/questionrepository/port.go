package questionrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ secondary.QuestionRepository = (*QuestionRepository)(nil)

type questionRow struct {
	ID           uuid.UUID      `db:"id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	Difficulty   string         `db:"difficulty"`
	Tags         pq.StringArray `db:"tags"`
	TestCases    []byte         `db:"test_cases"`
	SolutionCode string         `db:"solution_code"`
	MaxRuntime   int64          `db:"max_runtime_ms"`
	MaxMemory    int64          `db:"max_memory_mb"`
	CreatedAt    time.Time      `db:"created_at"`
}

// QuestionRepository reads and writes the question catalog in PostgreSQL
type QuestionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	table  string
}

// NewQuestionRepository creates a new PostgreSQL question repository
func NewQuestionRepository(db *sqlx.DB, logger primary.Logger, schema string) *QuestionRepository {
	return &QuestionRepository{
		db:     db,
		logger: logger,
		table:  schema + ".questions",
	}
}

// GetQuestion retrieves a question by ID
func (r *QuestionRepository) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	query := `
		SELECT id, title, description, difficulty, tags, test_cases,
			   solution_code, max_runtime_ms, max_memory_mb, created_at
		FROM ` + r.table + `
		WHERE id = $1
	`

	var row questionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get question", "questionId", id, "error", err)
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	q := &domain.Question{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		Difficulty:   domain.Difficulty(row.Difficulty),
		Tags:         []string(row.Tags),
		SolutionCode: row.SolutionCode,
		MaxRuntime:   row.MaxRuntime,
		MaxMemory:    row.MaxMemory,
		CreatedAt:    row.CreatedAt,
	}
	if err := json.Unmarshal(row.TestCases, &q.TestCases); err != nil {
		return nil, fmt.Errorf("failed to decode test cases of %s: %w", id, err)
	}
	return q, nil
}

// SaveQuestion inserts a question or replaces the stored one with the same ID
func (r *QuestionRepository) SaveQuestion(ctx context.Context, q *domain.Question) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	testCases := q.TestCases
	if testCases == nil {
		testCases = []domain.TestCase{}
	}
	testCasesJSON, err := json.Marshal(testCases)
	if err != nil {
		return fmt.Errorf("failed to marshal test cases: %w", err)
	}

	query := `
		INSERT INTO ` + r.table + ` (
			id, title, description, difficulty, tags, test_cases,
			solution_code, max_runtime_ms, max_memory_mb, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			difficulty = EXCLUDED.difficulty,
			tags = EXCLUDED.tags,
			test_cases = EXCLUDED.test_cases,
			solution_code = EXCLUDED.solution_code,
			max_runtime_ms = EXCLUDED.max_runtime_ms,
			max_memory_mb = EXCLUDED.max_memory_mb
	`
	_, err = r.db.ExecContext(ctx, query,
		q.ID,
		q.Title,
		q.Description,
		string(q.Difficulty),
		pq.Array(q.Tags),
		testCasesJSON,
		q.SolutionCode,
		q.MaxRuntime,
		q.MaxMemory,
		q.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save question", "questionId", q.ID, "error", err)
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}
