package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty of a question in the catalog
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is owned by the question catalog; the judge only reads it.
type Question struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Difficulty   Difficulty `json:"difficulty"`
	Tags         []string   `json:"tags"`
	TestCases    []TestCase `json:"testCases"`
	SolutionCode string     `json:"solutionCode"`
	MaxRuntime   int64      `json:"maxRuntime"` // milliseconds
	MaxMemory    int64      `json:"maxMemory"`  // megabytes
	CreatedAt    time.Time  `json:"createdAt"`
}

// TimeLimit is the per test case wall-clock limit handed to the executor.
func (q *Question) TimeLimit() time.Duration {
	return time.Duration(q.MaxRuntime) * time.Millisecond
}
