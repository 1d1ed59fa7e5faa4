package judge

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.com/codejudge.net/internal/core/ports/secondary/mocks"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

func TestRecorder_ProgressErrorKeepsCause(t *testing.T) {
	ctrl := gomock.NewController(t)
	submissions := mocks.NewMockSubmissionRepository(ctrl)
	users := mocks.NewMockUserPort(ctrl)
	cause := errors.New("connection reset")

	s := domain.NewSubmission(uuid.New(), uuid.New(), "sum", "javascript")
	s.Status = domain.StatusWrongAnswer
	submissions.EXPECT().SaveSubmission(gomock.Any(), s).Return(nil)
	users.EXPECT().AddQuestionProgress(gomock.Any(), s.UserID, s.QuestionID, domain.ProgressAttempted).Return(cause)

	saved, err := NewRecorder(submissions, users).Record(context.Background(), s)
	require.Error(t, err)
	assert.Same(t, s, saved)
	assert.ErrorIs(t, err, errs.ErrProgressUpdate)
	assert.ErrorIs(t, err, cause)
}

func TestRecorder_SaveErrorKeepsCause(t *testing.T) {
	ctrl := gomock.NewController(t)
	submissions := mocks.NewMockSubmissionRepository(ctrl)
	users := mocks.NewMockUserPort(ctrl)
	cause := errors.New("disk full")

	submissions.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Return(cause)

	saved, err := NewRecorder(submissions, users).Record(context.Background(),
		domain.NewSubmission(uuid.New(), uuid.New(), "sum", "javascript"))
	assert.Nil(t, saved)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, errs.ErrProgressUpdate)
}
