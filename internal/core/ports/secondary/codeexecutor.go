package secondary

//go:generate mockgen -source=codeexecutor.go -destination=mocks/codeexecutor.go -package=mocks

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

// CodeExecutor runs untrusted code. Every call is an independent execution:
// nothing it creates outlives the call.
//
// Execute must return within req.TimeLimit (plus teardown). A run that is
// killed for exceeding the limit is reported as an outcome with TimedOut set,
// not as an error. Program faults (non-zero exit, uncaught exception) are
// reported through ExecutionOutcome.Error. A non-nil error means the executor
// itself could not do its job.
type CodeExecutor interface {
	Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutcome, error)

	// Languages lists the language identifiers this executor can run.
	Languages() []string
}
