package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ IJudgeService = (*JudgeService)(nil)

// JudgeService implements IJudgeService
type JudgeService struct {
	questionRepo   secondary.QuestionRepository
	submissionRepo secondary.SubmissionRepository
	userPort       secondary.UserPort
	executor       secondary.CodeExecutor
	runner         *Runner
	recorder       *Recorder
	metrics        primary.JudgeMetrics
	logger         primary.Logger
	cfg            *config.JudgeConfig
	languages      mapset.Set[string]
	slots          *semaphore.Weighted
}

// NewJudgeService creates a new judge service
func NewJudgeService(
	questionRepo secondary.QuestionRepository,
	submissionRepo secondary.SubmissionRepository,
	userPort secondary.UserPort,
	executor secondary.CodeExecutor,
	metrics primary.JudgeMetrics,
	logger primary.Logger,
	cfg *config.JudgeConfig,
) *JudgeService {
	if metrics == nil {
		metrics = primary.NopMetrics{}
	}
	if cfg == nil {
		cfg = config.NewJudgeConfig()
	}
	return &JudgeService{
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
		userPort:       userPort,
		executor:       executor,
		runner:         NewRunner(executor, metrics, logger),
		recorder:       NewRecorder(submissionRepo, userPort),
		metrics:        metrics,
		logger:         logger,
		cfg:            cfg,
		languages:      mapset.NewThreadUnsafeSet(executor.Languages()...),
		slots:          semaphore.NewWeighted(cfg.MaxConcurrent),
	}
}

func (s *JudgeService) Languages() []string {
	return mapset.Sorted(s.languages)
}

// Run executes code once against the caller's input, bounded by the
// question's time limit.
func (s *JudgeService) Run(ctx context.Context, userID uuid.UUID, req RunRequest) (*RunResult, error) {
	language, err := s.validate(req.Code, req.Language)
	if err != nil {
		return nil, err
	}

	q, err := s.loadQuestion(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	s.logger.Info("Running code", "userId", userID, "questionId", q.ID, "language", language)

	outcome, err := s.executor.Execute(context.WithoutCancel(ctx), domain.ExecutionRequest{
		Code:          req.Code,
		Language:      language,
		Input:         req.Input,
		TimeLimit:     q.TimeLimit(),
		MemoryLimitMb: q.MaxMemory,
	})
	if err != nil {
		s.logger.Error("Executor failed", "questionId", q.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", errs.ErrExecutorUnavailable, err)
	}
	s.metrics.ObserveExecution(language, outcome)

	result := &RunResult{
		Status:  domain.StatusAccepted,
		Output:  outcome.Stdout,
		Runtime: outcome.ElapsedTimeMs,
		Memory:  outcome.PeakMemoryMb,
	}
	switch {
	case outcome.TimedOut:
		result.Status = domain.StatusTimeLimitExceeded
		result.Output = ""
		result.Error = domain.TimeoutMessage
	case outcome.Error != "":
		result.Status = domain.StatusRuntimeError
		result.Output = ""
		result.Error = outcome.Error
	}
	return result, nil
}

// Submit judges code against all test cases of a question, then stores the
// redacted submission and updates the user's progress. A failed progress
// update is logged and does not affect the returned report.
func (s *JudgeService) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*SubmissionReport, error) {
	language, err := s.validate(req.Code, req.Language)
	if err != nil {
		return nil, err
	}

	q, err := s.loadQuestion(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	s.logger.Info("Judging submission",
		"userId", userID,
		"questionId", q.ID,
		"language", language,
		"testCases", len(q.TestCases))

	// judging runs to completion even if the client goes away
	judgeCtx := context.WithoutCancel(ctx)
	start := time.Now()
	judgement, err := s.runner.RunSubmission(judgeCtx, req.Code, language, q)
	if err != nil {
		s.logger.Error("Judging failed", "questionId", q.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", errs.ErrExecutorUnavailable, err)
	}
	s.metrics.ObserveVerdict(language, judgement.Status, time.Since(start))

	submission := domain.NewSubmission(userID, q.ID, req.Code, language)
	submission.Status = judgement.Status
	submission.Runtime = judgement.Runtime
	submission.Memory = judgement.Memory
	submission.TestCaseResults = RedactAll(judgement.Results, q.TestCases)

	var warnings []string
	saved, err := s.recorder.Record(judgeCtx, submission)
	switch {
	case errors.Is(err, errs.ErrProgressUpdate):
		s.logger.Warn("Submission stored without progress update",
			"submissionId", submission.ID,
			"userId", userID,
			"error", err)
		warnings = append(warnings, WarningProgressNotUpdated)
	case err != nil:
		s.logger.Error("Failed to record submission", "submissionId", submission.ID, "error", err)
		return nil, err
	}

	s.logger.Info("Submission judged",
		"submissionId", saved.ID,
		"status", saved.Status,
		"runtime", saved.Runtime,
		"memory", saved.Memory,
		"evaluated", len(saved.TestCaseResults))

	report := newSubmissionReport(saved)
	report.Warnings = warnings
	return report, nil
}

// GetSubmission returns one of the user's submissions. Submissions of other
// users are reported as not found.
func (s *JudgeService) GetSubmission(ctx context.Context, userID, submissionID uuid.UUID) (*domain.Submission, error) {
	submission, err := s.submissionRepo.GetSubmission(ctx, submissionID)
	if err != nil {
		s.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil || submission.UserID != userID {
		return nil, errs.ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *JudgeService) ListSubmissions(ctx context.Context, userID uuid.UUID, questionID *uuid.UUID) ([]*domain.Submission, error) {
	submissions, err := s.submissionRepo.ListSubmissions(ctx, userID, questionID, s.cfg.ListLimit)
	if err != nil {
		s.logger.Error("Failed to list submissions", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	if submissions == nil {
		submissions = []*domain.Submission{}
	}
	return submissions, nil
}

func (s *JudgeService) GetProgress(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	progress, err := s.userPort.GetProgress(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get progress", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	if progress == nil {
		progress = &domain.UserProgress{UserID: userID}
	}
	if progress.SolvedQuestions == nil {
		progress.SolvedQuestions = []uuid.UUID{}
	}
	if progress.AttemptedQuestions == nil {
		progress.AttemptedQuestions = []uuid.UUID{}
	}
	return progress, nil
}

func (s *JudgeService) validate(code, language string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: code is required", errs.ErrInvalidRequest)
	}
	if language == "" {
		language = s.cfg.DefaultLanguage
	}
	if !s.languages.Contains(language) {
		return "", fmt.Errorf("%w: %s", errs.ErrUnsupportedLanguage, language)
	}
	return language, nil
}

func (s *JudgeService) loadQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	q, err := s.questionRepo.GetQuestion(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get question", "questionId", id, "error", err)
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if q == nil {
		return nil, errs.ErrQuestionNotFound
	}
	return q, nil
}

func (s *JudgeService) acquire(ctx context.Context) (func(), error) {
	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for a judge slot: %w", err)
	}
	return func() { s.slots.Release(1) }, nil
}
