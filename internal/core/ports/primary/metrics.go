package primary

import (
	"time"

	"gitlab.com/codejudge.net/internal/domain"
)

// JudgeMetrics receives judging telemetry.
type JudgeMetrics interface {
	ObserveExecution(language string, outcome *domain.ExecutionOutcome)
	ObserveVerdict(language string, status domain.Status, elapsed time.Duration)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ObserveExecution(string, *domain.ExecutionOutcome) {}

func (NopMetrics) ObserveVerdict(string, domain.Status, time.Duration) {}
