package judge

import (
	"gitlab.com/codejudge.net/internal/domain"
)

// HiddenPlaceholder replaces the content of hidden test cases.
const HiddenPlaceholder = "[Hidden]"

// Redact hides the content of a result whose test case is hidden. Passed is
// always kept.
func Redact(result domain.TestCaseResult, hidden bool) domain.TestCaseResult {
	if !hidden {
		return result
	}
	result.Input = HiddenPlaceholder
	result.ExpectedOutput = HiddenPlaceholder
	result.ActualOutput = HiddenPlaceholder
	if result.ErrorMessage != "" {
		result.ErrorMessage = HiddenPlaceholder
	}
	return result
}

// RedactAll redacts results against the test cases that produced them. The
// input slice is not modified.
func RedactAll(results []domain.TestCaseResult, cases []domain.TestCase) []domain.TestCaseResult {
	out := make([]domain.TestCaseResult, len(results))
	for i, r := range results {
		hidden := i < len(cases) && cases[i].IsHidden
		out[i] = Redact(r, hidden)
	}
	return out
}
