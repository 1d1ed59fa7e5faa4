package judge

import (
	"context"
	"fmt"

	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

// Recorder persists a judged submission and updates the submitter's
// solved/attempted sets.
type Recorder struct {
	submissionRepo secondary.SubmissionRepository
	userPort       secondary.UserPort
}

func NewRecorder(submissionRepo secondary.SubmissionRepository, userPort secondary.UserPort) *Recorder {
	return &Recorder{
		submissionRepo: submissionRepo,
		userPort:       userPort,
	}
}

// Record stores the submission and then the progress update. When only the
// progress update fails the stored submission is returned together with an
// error wrapping errs.ErrProgressUpdate.
func (r *Recorder) Record(ctx context.Context, submission *domain.Submission) (*domain.Submission, error) {
	if err := r.submissionRepo.SaveSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	kind := domain.ProgressAttempted
	if submission.Status == domain.StatusAccepted {
		kind = domain.ProgressSolved
	}
	if err := r.userPort.AddQuestionProgress(ctx, submission.UserID, submission.QuestionID, kind); err != nil {
		return submission, fmt.Errorf("%w: %w", errs.ErrProgressUpdate, err)
	}
	return submission, nil
}
