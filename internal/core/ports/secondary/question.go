package secondary

//go:generate mockgen -source=question.go -destination=mocks/question.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

// QuestionRepository reads the question catalog. GetQuestion returns
// (nil, nil) when the id does not resolve.
type QuestionRepository interface {
	GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// SaveQuestion inserts or replaces a question
	SaveQuestion(ctx context.Context, question *domain.Question) error
}
