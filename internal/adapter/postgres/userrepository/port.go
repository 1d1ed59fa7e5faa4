package userrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ secondary.UserPort = &userRepo{}

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserPort {
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (u userRepo) usersTable() string {
	return u.schema + "." + domain.GetUserTable().GetTableName()
}

func (u userRepo) progressTable() string {
	return u.schema + ".user_questions"
}

func (u userRepo) Create(ctx context.Context, user *domain.Users) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	t := domain.GetUserTable()
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.usersTable(), t.ID, t.UserName, t.Email, t.PasswordHash, t.AuthProvider, t.GoogleID,
	)
	_, err := u.db.ExecContext(ctx, query,
		user.ID, user.UserName, user.Email, user.PasswordHash, user.AuthProvider, user.GoogleID,
	)
	if err != nil {
		u.logger.Error("Failed to create user", "userName", user.UserName, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u userRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	return u.getBy(ctx, domain.GetUserTable().ID, id)
}

func (u userRepo) GetByUserName(ctx context.Context, userName string) (*domain.Users, error) {
	return u.getBy(ctx, domain.GetUserTable().UserName, userName)
}

func (u userRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error) {
	return u.getBy(ctx, domain.GetUserTable().GoogleID, googleID)
}

func (u userRepo) getBy(ctx context.Context, column string, value interface{}) (*domain.Users, error) {
	t := domain.GetUserTable()
	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		t.ID, t.UserName, t.PasswordHash, t.Email, t.AuthProvider, t.GoogleID,
		u.usersTable(), column,
	)

	var user domain.Users
	err := u.db.GetContext(ctx, &user, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return &user, nil
}

// AddQuestionProgress records questionID in the user's solved or attempted
// set. Re-adding an existing entry is a no-op.
func (u userRepo) AddQuestionProgress(ctx context.Context, userID, questionID uuid.UUID, kind domain.ProgressKind) error {
	query := `
		INSERT INTO ` + u.progressTable() + ` (user_id, question_id, kind)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, question_id, kind) DO NOTHING
	`
	if _, err := u.db.ExecContext(ctx, query, userID, questionID, string(kind)); err != nil {
		u.logger.Error("Failed to add question progress",
			"userId", userID,
			"questionId", questionID,
			"kind", kind,
			"error", err)
		return fmt.Errorf("failed to add question progress: %w", err)
	}
	return nil
}

func (u userRepo) GetProgress(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	query := `
		SELECT
			COALESCE(array_agg(question_id::text ORDER BY question_id) FILTER (WHERE kind = 'solved'), '{}') AS solved,
			COALESCE(array_agg(question_id::text ORDER BY question_id) FILTER (WHERE kind = 'attempted'), '{}') AS attempted
		FROM ` + u.progressTable() + `
		WHERE user_id = $1
	`

	var solved, attempted pq.StringArray
	if err := u.db.QueryRowxContext(ctx, query, userID).Scan(&solved, &attempted); err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	progress := &domain.UserProgress{UserID: userID}
	var err error
	if progress.SolvedQuestions, err = parseIDs(solved); err != nil {
		return nil, err
	}
	if progress.AttemptedQuestions, err = parseIDs(attempted); err != nil {
		return nil, err
	}
	domain.SortQuestionIDs(progress.SolvedQuestions)
	domain.SortQuestionIDs(progress.AttemptedQuestions)
	return progress, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid question id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
