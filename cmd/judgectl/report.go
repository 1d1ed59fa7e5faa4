package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/domain"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// printJudgement writes a per-case table followed by the verdict. Hidden
// cases are shown in full since the caller owns the question file.
func printJudgement(w io.Writer, q *domain.Question, j *judge.Judgement) {
	for i, r := range j.Results {
		mark := passColor.Sprint("PASS")
		if !r.Passed {
			mark = failColor.Sprint("FAIL")
		}
		hidden := ""
		if i < len(q.TestCases) && q.TestCases[i].IsHidden {
			hidden = dimColor.Sprint(" (hidden)")
		}
		fmt.Fprintf(w, "#%-3d %s%s\n", i+1, mark, hidden)
		if r.Passed {
			continue
		}
		fmt.Fprintf(w, "     input:    %q\n", r.Input)
		fmt.Fprintf(w, "     expected: %q\n", r.ExpectedOutput)
		fmt.Fprintf(w, "     actual:   %q\n", r.ActualOutput)
		if r.ErrorMessage != "" {
			fmt.Fprintf(w, "     error:    %s\n", r.ErrorMessage)
		}
	}
	if skipped := len(q.TestCases) - len(j.Results); skipped > 0 {
		fmt.Fprintln(w, dimColor.Sprintf("%d test case(s) not run", skipped))
	}

	verdict := failColor
	if j.Status == domain.StatusAccepted {
		verdict = passColor
	}
	fmt.Fprintf(w, "%s  runtime %.0f ms  memory %.1f MB\n", verdict.Sprint(j.Status.String()), j.Runtime, j.Memory)
}
