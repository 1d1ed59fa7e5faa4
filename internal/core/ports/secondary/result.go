package secondary

//go:generate mockgen -source=result.go -destination=mocks/result.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

// SubmissionRepository stores judged submissions. Writes are keyed by
// submission id and never update an existing record.
type SubmissionRepository interface {
	// SaveSubmission persists a new submission
	SaveSubmission(ctx context.Context, submission *domain.Submission) error

	// GetSubmission returns (nil, nil) when the id does not resolve
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error)

	// ListSubmissions returns a user's submissions, newest first, optionally
	// restricted to one question
	ListSubmissions(ctx context.Context, userID uuid.UUID, questionID *uuid.UUID, limit int) ([]*domain.Submission, error)
}
