package judge

import (
	"gitlab.com/codejudge.net/internal/domain"
)

// checkLimits decides whether judging stops after a case. Time is checked
// before memory, so a case over both limits is a time limit verdict.
// Memory is compared using the running maximum.
func checkLimits(q *domain.Question, outcome *domain.ExecutionOutcome, peakMemory float64) (domain.Status, bool) {
	if outcome.TimedOut || outcome.ElapsedTimeMs > float64(q.MaxRuntime) {
		return domain.StatusTimeLimitExceeded, true
	}
	if peakMemory > float64(q.MaxMemory) {
		return domain.StatusMemoryLimitExceeded, true
	}
	return domain.StatusInvalid, false
}
