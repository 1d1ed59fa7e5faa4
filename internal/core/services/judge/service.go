package judge

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

// IJudgeService evaluates code against questions and answers queries about
// past submissions.
type IJudgeService interface {
	// Run executes code once against caller supplied input. Nothing is stored.
	Run(ctx context.Context, userID uuid.UUID, req RunRequest) (*RunResult, error)

	// Submit judges code against every test case of a question and records
	// the submission.
	Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*SubmissionReport, error)

	GetSubmission(ctx context.Context, userID, submissionID uuid.UUID) (*domain.Submission, error)
	ListSubmissions(ctx context.Context, userID uuid.UUID, questionID *uuid.UUID) ([]*domain.Submission, error)
	GetProgress(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)

	// Languages lists the languages accepted by Run and Submit.
	Languages() []string
}

type RunRequest struct {
	Code       string    `json:"code"`
	Input      string    `json:"input"`
	QuestionID uuid.UUID `json:"questionId"`
	Language   string    `json:"language,omitempty"`
}

// RunResult is the outcome of an ad-hoc run. Error is set exactly when Status
// is not accepted.
type RunResult struct {
	Status  domain.Status `json:"status"`
	Output  string        `json:"output,omitempty"`
	Error   string        `json:"error,omitempty"`
	Runtime float64       `json:"runtime"`
	Memory  float64       `json:"memory"`
}

type SubmitRequest struct {
	Code       string    `json:"code"`
	QuestionID uuid.UUID `json:"questionId"`
	Language   string    `json:"language,omitempty"`
}

// WarningProgressNotUpdated is reported when the submission was stored but
// the solved/attempted sets could not be updated.
const WarningProgressNotUpdated = "submission stored but progress was not updated"

// SubmissionReport is what a submitter gets back. Hidden test cases are
// already redacted. Warnings carry non-fatal problems that did not change
// the verdict.
type SubmissionReport struct {
	ID              uuid.UUID               `json:"id"`
	Status          domain.Status           `json:"status"`
	Runtime         float64                 `json:"runtime"`
	Memory          float64                 `json:"memory"`
	TestCaseResults []domain.TestCaseResult `json:"testCaseResults"`
	Warnings        []string                `json:"warnings,omitempty"`
}

func newSubmissionReport(s *domain.Submission) *SubmissionReport {
	return &SubmissionReport{
		ID:              s.ID,
		Status:          s.Status,
		Runtime:         s.Runtime,
		Memory:          s.Memory,
		TestCaseResults: s.TestCaseResults,
	}
}
