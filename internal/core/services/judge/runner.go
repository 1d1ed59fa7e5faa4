package judge

import (
	"context"
	"fmt"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

// Judgement is the unredacted result of judging one submission.
type Judgement struct {
	Status  domain.Status
	Runtime float64 // max elapsed ms over evaluated cases
	Memory  float64 // max peak MB over evaluated cases
	Results []domain.TestCaseResult
}

// Runner drives an executor across a question's test cases, one at a time
// and in declared order.
type Runner struct {
	executor secondary.CodeExecutor
	metrics  primary.JudgeMetrics
	logger   primary.Logger
}

func NewRunner(executor secondary.CodeExecutor, metrics primary.JudgeMetrics, logger primary.Logger) *Runner {
	if metrics == nil {
		metrics = primary.NopMetrics{}
	}
	return &Runner{
		executor: executor,
		metrics:  metrics,
		logger:   logger,
	}
}

// RunSubmission judges code against q. A limit violation stops judging at the
// violating case, which is included in the results. The returned error is
// only set when the executor itself failed.
func (r *Runner) RunSubmission(ctx context.Context, code, language string, q *domain.Question) (*Judgement, error) {
	j := &Judgement{
		Results: make([]domain.TestCaseResult, 0, len(q.TestCases)),
	}

	for i, tc := range q.TestCases {
		outcome, err := r.executor.Execute(ctx, domain.ExecutionRequest{
			Code:          code,
			Language:      language,
			Input:         tc.Input,
			TimeLimit:     q.TimeLimit(),
			MemoryLimitMb: q.MaxMemory,
		})
		if err != nil {
			return nil, fmt.Errorf("execute test case %d: %w", i, err)
		}
		r.metrics.ObserveExecution(language, outcome)

		if outcome.ElapsedTimeMs > j.Runtime {
			j.Runtime = outcome.ElapsedTimeMs
		}
		if outcome.PeakMemoryMb > j.Memory {
			j.Memory = outcome.PeakMemoryMb
		}

		passed := !outcome.Faulted() && outputMatches(outcome.Stdout, tc.ExpectedOutput)
		j.Results = append(j.Results, domain.TestCaseResult{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			ActualOutput:   outcome.Stdout,
			ErrorMessage:   outcome.Error,
			Passed:         passed,
		})

		r.logger.Debug("Test case evaluated",
			"questionId", q.ID,
			"index", i,
			"passed", passed,
			"elapsedMs", outcome.ElapsedTimeMs,
			"memoryMb", outcome.PeakMemoryMb)

		if status, stop := checkLimits(q, outcome, j.Memory); stop {
			j.Status = status
			return j, nil
		}
	}

	j.Status = ClassifyVerdict(j.Results)
	return j, nil
}
