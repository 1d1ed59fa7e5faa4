package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ secondary.SubmissionRepository = (*SubmissionStore)(nil)

// SubmissionStore keeps submissions in process memory. Records are written
// once and never replaced.
type SubmissionStore struct {
	submissions *xsync.MapOf[uuid.UUID, *domain.Submission]
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{submissions: xsync.NewMapOf[uuid.UUID, *domain.Submission]()}
}

func (s *SubmissionStore) SaveSubmission(_ context.Context, submission *domain.Submission) error {
	if _, loaded := s.submissions.LoadOrStore(submission.ID, cloneSubmission(submission)); loaded {
		return fmt.Errorf("submission %s already exists", submission.ID)
	}
	return nil
}

func (s *SubmissionStore) GetSubmission(_ context.Context, id uuid.UUID) (*domain.Submission, error) {
	sub, ok := s.submissions.Load(id)
	if !ok {
		return nil, nil
	}
	return cloneSubmission(sub), nil
}

func (s *SubmissionStore) ListSubmissions(_ context.Context, userID uuid.UUID, questionID *uuid.UUID, limit int) ([]*domain.Submission, error) {
	var out []*domain.Submission
	s.submissions.Range(func(_ uuid.UUID, sub *domain.Submission) bool {
		if sub.UserID != userID {
			return true
		}
		if questionID != nil && sub.QuestionID != *questionID {
			return true
		}
		out = append(out, cloneSubmission(sub))
		return true
	})

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneSubmission(s *domain.Submission) *domain.Submission {
	c := *s
	c.TestCaseResults = append([]domain.TestCaseResult(nil), s.TestCaseResults...)
	return &c
}
