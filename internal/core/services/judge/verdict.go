package judge

import (
	"strings"

	"gitlab.com/codejudge.net/internal/domain"
)

// outputMatches compares program output with the expected output. Only
// leading and trailing whitespace is ignored.
func outputMatches(actual, expected string) bool {
	return strings.TrimSpace(actual) == strings.TrimSpace(expected)
}

// ClassifyVerdict reduces a complete, limit-free result sequence to a
// status. There is no partial credit.
func ClassifyVerdict(results []domain.TestCaseResult) domain.Status {
	for i := range results {
		if !results[i].Passed {
			return domain.StatusWrongAnswer
		}
	}
	return domain.StatusAccepted
}
