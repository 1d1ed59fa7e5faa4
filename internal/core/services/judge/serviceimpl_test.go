package judge

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/secondary/mocks"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

type serviceFixture struct {
	questions   *mocks.MockQuestionRepository
	submissions *mocks.MockSubmissionRepository
	users       *mocks.MockUserPort
	exec        *scriptedExecutor
	svc         *JudgeService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)
	f := &serviceFixture{
		questions:   mocks.NewMockQuestionRepository(ctrl),
		submissions: mocks.NewMockSubmissionRepository(ctrl),
		users:       mocks.NewMockUserPort(ctrl),
		exec:        &scriptedExecutor{},
	}
	f.svc = NewJudgeService(
		f.questions,
		f.submissions,
		f.users,
		f.exec,
		nil,
		logging.FromZap(zaptest.NewLogger(t)),
		&config.JudgeConfig{DefaultLanguage: "javascript", MaxConcurrent: 2, ListLimit: 20},
	)
	return f
}

func TestSubmit_AcceptedStoresThenMarksSolved(t *testing.T) {
	f := newServiceFixture(t)
	q := sumQuestion()
	q.ID = uuid.New()
	userID := uuid.New()

	var stored *domain.Submission
	f.questions.EXPECT().GetQuestion(gomock.Any(), q.ID).Return(q, nil)
	gomock.InOrder(
		f.submissions.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *domain.Submission) error {
				stored = s
				return nil
			}),
		f.users.EXPECT().AddQuestionProgress(gomock.Any(), userID, q.ID, domain.ProgressSolved).Return(nil),
	)

	report, err := f.svc.Submit(context.Background(), userID, SubmitRequest{Code: "sum", QuestionID: q.ID})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAccepted, report.Status)
	assert.Len(t, report.TestCaseResults, 2)
	require.NotNil(t, stored)
	assert.Equal(t, report.ID, stored.ID)
	assert.Equal(t, "javascript", stored.Language)
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, q.ID, stored.QuestionID)
	assert.Empty(t, report.Warnings)
}

func TestSubmit_WrongAnswerMarksAttempted(t *testing.T) {
	f := newServiceFixture(t)
	q := sumQuestion()
	q.ID = uuid.New()
	userID := uuid.New()

	f.questions.EXPECT().GetQuestion(gomock.Any(), q.ID).Return(q, nil)
	f.submissions.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Return(nil)
	f.users.EXPECT().AddQuestionProgress(gomock.Any(), userID, q.ID, domain.ProgressAttempted).Return(nil)

	report, err := f.svc.Submit(context.Background(), userID, SubmitRequest{Code: "zero", QuestionID: q.ID, Language: "python"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWrongAnswer, report.Status)
	assert.Len(t, report.TestCaseResults, 2)
	assert.Equal(t, "python", f.exec.calls[0].Language)
}

func TestSubmit_HiddenCaseIsRedactedBeforeStore(t *testing.T) {
	f := newServiceFixture(t)
	q := &domain.Question{
		ID:         uuid.New(),
		TestCases:  []domain.TestCase{{Input: "4\n4", ExpectedOutput: "8", IsHidden: true}},
		MaxRuntime: 1000,
		MaxMemory:  256,
	}

	var stored *domain.Submission
	f.questions.EXPECT().GetQuestion(gomock.Any(), q.ID).Return(q, nil)
	f.submissions.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.Submission) error {
			stored = s
			return nil
		})
	f.users.EXPECT().AddQuestionProgress(gomock.Any(), gomock.Any(), q.ID, domain.ProgressAttempted).Return(nil)

	report, err := f.svc.Submit(context.Background(), uuid.New(), SubmitRequest{Code: "zero", QuestionID: q.ID})
	require.NoError(t, err)

	require.Len(t, report.TestCaseResults, 1)
	r := report.TestCaseResults[0]
	assert.False(t, r.Passed)
	assert.Equal(t, HiddenPlaceholder, r.Input)
	assert.Equal(t, HiddenPlaceholder, r.ExpectedOutput)
	assert.Equal(t, HiddenPlaceholder, r.ActualOutput)
	assert.Equal(t, HiddenPlaceholder, stored.TestCaseResults[0].Input)
}

func TestSubmit_TimeLimitIsRecordedAsAttempted(t *testing.T) {
	f := newServiceFixture(t)
	q := sumQuestion()
	q.ID = uuid.New()

	f.questions.EXPECT().GetQuestion(gomock.Any(), q.ID).Return(q, nil)
	f.submissions.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Return(nil)
	f.users.EXPECT().AddQuestionProgress(gomock.Any(), gomock.Any(), q.ID, domain.ProgressAttempted).Return(nil)

	report, err := f.svc.Submit(context.Background(), uuid.New(), SubmitRequest{Code: "loop", QuestionID: q.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTimeLimitExceeded, report.Status)
	assert.Len(t, report.TestCaseResults, 1)
}

func TestSubmit_ProgressFailureStillReturnsVerdict(t *testing.T) {
	f := newServiceFixture(t)
	q := sumQuestion()
	q.ID = uuid.New()

	f.questions.EXPECT().GetQuestion(gomock.Any(), q.ID).Return(q, nil)
	f.submissions.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Times(1).Return(nil)
	f.users.EXPECT().AddQuestionProgress(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	report, err := f.svc.Submit(context.Background(), uuid.New(), SubmitRequest{Code: "sum", QuestionID: q.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, report.Status)
	assert.Equal(t, []string{WarningProgressNotUpdated}, report.Warnings)
}

func TestSubmit_SaveFailureSkipsProgress(t *testing.T) {
	f := newServiceFixture(t)
	q := sumQuestion()
	q.ID = uuid.New()

	f.questions.EXPECT().GetQuestion(gomock.Any(), q.ID).Return(q, nil)
	f.submissions.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	report, err := f.svc.Submit(context.Background(), uuid.New(), SubmitRequest{Code: "sum", QuestionID: q.ID})
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "disk full")
}

func TestSubmit_QuestionNotFoundNeverExecutes(t *testing.T) {
	f := newServiceFixture(t)
	id := uuid.New()
	f.questions.EXPECT().GetQuestion(gomock.Any(), id).Return(nil, nil)

	_, err := f.svc.Submit(context.Background(), uuid.New(), SubmitRequest{Code: "sum", QuestionID: id})
	assert.ErrorIs(t, err, errs.ErrQuestionNotFound)
	assert.Zero(t, f.exec.callCount())
}

func TestSubmit_ExecutorFailureRecordsNothing(t *testing.T) {
	f := newServiceFixture(t)
	f.exec.err = errors.New("interpreter missing")
	q := sumQuestion()
	q.ID = uuid.New()
	f.questions.EXPECT().GetQuestion(gomock.Any(), q.ID).Return(q, nil)

	_, err := f.svc.Submit(context.Background(), uuid.New(), SubmitRequest{Code: "sum", QuestionID: q.ID})
	assert.ErrorIs(t, err, errs.ErrExecutorUnavailable)
	assert.ErrorIs(t, err, f.exec.err)
}

func TestSubmit_PassesQuestionLimitsToExecutor(t *testing.T) {
	f := newServiceFixture(t)
	q := sumQuestion()
	q.ID = uuid.New()
	q.MaxMemory = 1536

	f.questions.EXPECT().GetQuestion(gomock.Any(), q.ID).Return(q, nil)
	f.submissions.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Return(nil)
	f.users.EXPECT().AddQuestionProgress(gomock.Any(), gomock.Any(), q.ID, domain.ProgressSolved).Return(nil)

	_, err := f.svc.Submit(context.Background(), uuid.New(), SubmitRequest{Code: "sum", QuestionID: q.ID})
	require.NoError(t, err)

	require.Len(t, f.exec.calls, 2)
	for _, req := range f.exec.calls {
		assert.Equal(t, int64(1536), req.MemoryLimitMb)
		assert.Equal(t, q.TimeLimit(), req.TimeLimit)
	}
}

func TestSubmit_Validation(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Submit(context.Background(), uuid.New(), SubmitRequest{Code: "  ", QuestionID: uuid.New()})
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	_, err = f.svc.Submit(context.Background(), uuid.New(), SubmitRequest{Code: "sum", QuestionID: uuid.New(), Language: "cobol"})
	assert.ErrorIs(t, err, errs.ErrUnsupportedLanguage)
}

func TestRun(t *testing.T) {
	q := sumQuestion()
	q.ID = uuid.New()

	tests := []struct {
		name       string
		code       string
		wantStatus domain.Status
		wantOutput string
		wantError  string
	}{
		{name: "output", code: "sum", wantStatus: domain.StatusAccepted, wantOutput: "  7\n"},
		{name: "runtime error", code: "throw", wantStatus: domain.StatusRuntimeError, wantError: "ReferenceError: x is not defined"},
		{name: "timeout", code: "loop", wantStatus: domain.StatusTimeLimitExceeded, wantError: domain.TimeoutMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			f.questions.EXPECT().GetQuestion(gomock.Any(), q.ID).Return(q, nil)

			res, err := f.svc.Run(context.Background(), uuid.New(), RunRequest{Code: tt.code, Input: "3\n4", QuestionID: q.ID})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantOutput, res.Output)
			assert.Equal(t, tt.wantError, res.Error)
			assert.Equal(t, q.TimeLimit(), f.exec.calls[0].TimeLimit)
		})
	}
}

func TestRun_QuestionNotFound(t *testing.T) {
	f := newServiceFixture(t)
	f.questions.EXPECT().GetQuestion(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := f.svc.Run(context.Background(), uuid.New(), RunRequest{Code: "sum", QuestionID: uuid.New()})
	assert.ErrorIs(t, err, errs.ErrQuestionNotFound)
	assert.Zero(t, f.exec.callCount())
}

func TestGetSubmission_OwnedByAnotherUser(t *testing.T) {
	f := newServiceFixture(t)
	owner := uuid.New()
	sub := domain.NewSubmission(owner, uuid.New(), "sum", "javascript")
	f.submissions.EXPECT().GetSubmission(gomock.Any(), sub.ID).Return(sub, nil).Times(2)

	got, err := f.svc.GetSubmission(context.Background(), owner, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub, got)

	_, err = f.svc.GetSubmission(context.Background(), uuid.New(), sub.ID)
	assert.ErrorIs(t, err, errs.ErrSubmissionNotFound)
}

func TestListSubmissions_UsesConfiguredLimit(t *testing.T) {
	f := newServiceFixture(t)
	userID := uuid.New()
	qid := uuid.New()
	f.submissions.EXPECT().ListSubmissions(gomock.Any(), userID, &qid, 20).Return(nil, nil)

	got, err := f.svc.ListSubmissions(context.Background(), userID, &qid)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetProgress_EmptyUser(t *testing.T) {
	f := newServiceFixture(t)
	userID := uuid.New()
	f.users.EXPECT().GetProgress(gomock.Any(), userID).Return(nil, nil)

	p, err := f.svc.GetProgress(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.Empty(t, p.SolvedQuestions)
	assert.NotNil(t, p.AttemptedQuestions)
}

func TestLanguages(t *testing.T) {
	f := newServiceFixture(t)
	assert.Equal(t, []string{"javascript", "python"}, f.svc.Languages())
}
