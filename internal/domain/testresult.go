package domain

import "time"

// TimeoutMessage is the fault text an executor reports for a killed run.
const TimeoutMessage = "time limit exceeded"

// MemoryLimitMessage is the fault text for a run killed by its memory
// ceiling.
const MemoryLimitMessage = "memory limit exceeded"

// ExecutionRequest is one code/input pair to run under a wall-clock limit.
type ExecutionRequest struct {
	Code      string
	Language  string
	Input     string
	TimeLimit time.Duration
	// MemoryLimitMb is the question's memory limit. Executors that enforce a
	// ceiling size it from this value; zero means the executor default.
	MemoryLimitMb int64
}

// ExecutionOutcome is what an executor observed for a single run. It is
// never persisted.
type ExecutionOutcome struct {
	Stdout        string
	Error         string // empty when the program exited normally
	TimedOut      bool
	ElapsedTimeMs float64
	PeakMemoryMb  float64
}

// Faulted reports whether the run produced an error instead of output.
func (o *ExecutionOutcome) Faulted() bool {
	return o.TimedOut || o.Error != ""
}

// TestCaseResult represents the result of a single test case execution
type TestCaseResult struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	ActualOutput   string `json:"actualOutput"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
	Passed         bool   `json:"passed"`
}
