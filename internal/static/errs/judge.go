package errs

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrExecutorUnavailable = errors.New("code executor unavailable")
)

// ErrProgressUpdate marks a submission that was stored but whose
// solved/attempted bookkeeping failed.
var ErrProgressUpdate = errors.New("failed to update user progress")
