package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ secondary.QuestionRepository = (*QuestionStore)(nil)

// QuestionStore keeps questions in process memory.
type QuestionStore struct {
	questions *xsync.MapOf[uuid.UUID, *domain.Question]
}

func NewQuestionStore() *QuestionStore {
	return &QuestionStore{questions: xsync.NewMapOf[uuid.UUID, *domain.Question]()}
}

func (s *QuestionStore) GetQuestion(_ context.Context, id uuid.UUID) (*domain.Question, error) {
	q, ok := s.questions.Load(id)
	if !ok {
		return nil, nil
	}
	return cloneQuestion(q), nil
}

func (s *QuestionStore) SaveQuestion(_ context.Context, question *domain.Question) error {
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	s.questions.Store(question.ID, cloneQuestion(question))
	return nil
}

func cloneQuestion(q *domain.Question) *domain.Question {
	c := *q
	c.TestCases = append([]domain.TestCase(nil), q.TestCases...)
	c.Tags = append([]string(nil), q.Tags...)
	return &c
}
