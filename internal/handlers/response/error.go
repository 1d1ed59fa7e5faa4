package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/codejudge.net/internal/static/errs"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// StatusCode maps a service error to the HTTP status a client should see.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrQuestionNotFound), errors.Is(err, errs.ErrSubmissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidRequest), errors.Is(err, errs.ErrUnsupportedLanguage),
		errors.Is(err, errs.EmailRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.InvalidCredentials), errors.Is(err, errs.Unauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ShouldUseFPTEmail):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteErrorFrom writes {"error": ...} with the status StatusCode picks.
// Internal errors are not echoed to the client.
func WriteErrorFrom(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = errs.InternalError.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
