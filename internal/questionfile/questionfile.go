// Package questionfile reads questions from TOML files for offline judging
// and import.
package questionfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"gitlab.com/codejudge.net/internal/domain"
)

type fileQuestion struct {
	ID           string            `toml:"id"`
	Title        string            `toml:"title"`
	Description  string            `toml:"description"`
	Difficulty   string            `toml:"difficulty"`
	Tags         []string          `toml:"tags"`
	SolutionCode string            `toml:"solution_code"`
	MaxRuntimeMs int64             `toml:"max_runtime_ms"`
	MaxMemoryMb  int64             `toml:"max_memory_mb"`
	TestCases    []domain.TestCase `toml:"test_cases"`
}

// Load reads and validates a question file.
func Load(path string) (*domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file: %w", err)
	}
	q, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}

// LoadDir loads every *.toml file in dir in name order. A missing or empty
// directory yields no questions; any invalid file fails the whole load.
func LoadDir(dir string) ([]*domain.Question, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list question files: %w", err)
	}
	sort.Strings(paths)

	questions := make([]*domain.Question, 0, len(paths))
	for _, path := range paths {
		q, err := Load(path)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Decode parses a question from TOML. The id, both limits and at least one
// test case are required.
func Decode(data []byte) (*domain.Question, error) {
	var f fileQuestion
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	id, err := uuid.Parse(f.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid question id %q: %w", f.ID, err)
	}
	if f.MaxRuntimeMs <= 0 {
		return nil, fmt.Errorf("max_runtime_ms must be positive")
	}
	if f.MaxMemoryMb <= 0 {
		return nil, fmt.Errorf("max_memory_mb must be positive")
	}
	if len(f.TestCases) == 0 {
		return nil, fmt.Errorf("question has no test cases")
	}

	difficulty := domain.Difficulty(f.Difficulty)
	switch difficulty {
	case "":
		difficulty = domain.DifficultyEasy
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		return nil, fmt.Errorf("unknown difficulty %q", f.Difficulty)
	}

	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}

	return &domain.Question{
		ID:           id,
		Title:        f.Title,
		Description:  f.Description,
		Difficulty:   difficulty,
		Tags:         tags,
		TestCases:    f.TestCases,
		SolutionCode: f.SolutionCode,
		MaxRuntime:   f.MaxRuntimeMs,
		MaxMemory:    f.MaxMemoryMb,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
