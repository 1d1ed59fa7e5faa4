package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is created once per submit request and never mutated after it
// has been stored.
type Submission struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"userId"`
	QuestionID      uuid.UUID        `json:"questionId"`
	Code            string           `json:"code"`
	Language        string           `json:"language"`
	Status          Status           `json:"status"`
	Runtime         float64          `json:"runtime"` // max elapsed ms over evaluated cases
	Memory          float64          `json:"memory"`  // max peak MB over evaluated cases
	TestCaseResults []TestCaseResult `json:"testCaseResults"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// NewSubmission creates a new submission
func NewSubmission(userID, questionID uuid.UUID, code, language string) *Submission {
	return &Submission{
		ID:         uuid.New(),
		UserID:     userID,
		QuestionID: questionID,
		Code:       code,
		Language:   language,
		CreatedAt:  time.Now().UTC(),
	}
}
