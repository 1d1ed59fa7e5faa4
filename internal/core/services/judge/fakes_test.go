package judge

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"gitlab.com/codejudge.net/internal/domain"
)

// scriptedExecutor interprets a tiny set of program names instead of running
// real code.
type scriptedExecutor struct {
	mu    sync.Mutex
	calls []domain.ExecutionRequest
	// memory reported per call, cycled
	memory []float64
	// elapsed reported per call, cycled
	elapsed []float64
	err     error
}

func (e *scriptedExecutor) Languages() []string { return []string{"javascript", "python"} }

func (e *scriptedExecutor) Execute(_ context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutcome, error) {
	e.mu.Lock()
	n := len(e.calls)
	e.calls = append(e.calls, req)
	e.mu.Unlock()

	if e.err != nil {
		return nil, e.err
	}

	out := &domain.ExecutionOutcome{ElapsedTimeMs: 5, PeakMemoryMb: 10}
	if len(e.elapsed) > 0 {
		out.ElapsedTimeMs = e.elapsed[n%len(e.elapsed)]
	}
	if len(e.memory) > 0 {
		out.PeakMemoryMb = e.memory[n%len(e.memory)]
	}

	switch req.Code {
	case "sum":
		total := 0
		for _, line := range strings.Fields(req.Input) {
			v, _ := strconv.Atoi(line)
			total += v
		}
		out.Stdout = "  " + strconv.Itoa(total) + "\n"
	case "zero":
		out.Stdout = "0"
	case "loop":
		out.TimedOut = true
		out.Error = domain.TimeoutMessage
		out.ElapsedTimeMs = float64(req.TimeLimit.Milliseconds())
	case "throw":
		out.Error = "ReferenceError: x is not defined"
	case "echo":
		out.Stdout = req.Input
	}
	return out, nil
}

func (e *scriptedExecutor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func sumQuestion() *domain.Question {
	return &domain.Question{
		Title: "Sum",
		TestCases: []domain.TestCase{
			{Input: "1\n2", ExpectedOutput: "3"},
			{Input: "5\n5", ExpectedOutput: "10"},
		},
		MaxRuntime: 1000,
		MaxMemory:  256,
	}
}
