package submissions

import "github.com/google/uuid"

// RunRequest is the body of POST /api/submissions/run.
type RunRequest struct {
	Code       string    `json:"code"`
	Input      string    `json:"input"`
	QuestionID uuid.UUID `json:"questionId"`
	Language   string    `json:"language,omitempty"`
}

type RunResponse struct {
	Output string `json:"output"`
}

// SubmitRequest is the body of POST /api/submissions/submit.
type SubmitRequest struct {
	Code       string    `json:"code"`
	QuestionID uuid.UUID `json:"questionId"`
	Language   string    `json:"language,omitempty"`
}

type LanguagesResponse struct {
	Languages []string `json:"languages"`
}
