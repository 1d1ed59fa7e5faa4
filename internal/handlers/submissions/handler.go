package submissions

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/handlers/response"
	"gitlab.com/codejudge.net/internal/static/errs"
)

// SubmissionHandler serves the judge API. Every route requires an
// authenticated user.
type SubmissionHandler struct {
	judgeService judge.IJudgeService
	logger       primary.Logger
}

var _ judge.IJudgeService = &judge.JudgeService{}

func NewSubmissionHandler(judgeService judge.IJudgeService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		judgeService: judgeService,
		logger:       logger,
	}
}

// RegisterRoutes mounts the routes on router behind the auth middleware.
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router, auth mux.MiddlewareFunc) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth)
	api.HandleFunc("/submissions/run", h.Run).Methods("POST")
	api.HandleFunc("/submissions/submit", h.Submit).Methods("POST")
	api.HandleFunc("/submissions/languages", h.GetLanguages).Methods("GET")
	api.HandleFunc("/submissions/{submissionId}", h.GetSubmission).Methods("GET")
	api.HandleFunc("/submissions", h.ListSubmissions).Methods("GET")
	api.HandleFunc("/users/me/progress", h.GetProgress).Methods("GET")
}

// Run executes code once against the caller's input.
func (h *SubmissionHandler) Run(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteErrorFrom(w, errs.Unauthorized)
		return
	}
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.judgeService.Run(r.Context(), userID, judge.RunRequest{
		Code:       req.Code,
		Input:      req.Input,
		QuestionID: req.QuestionID,
		Language:   req.Language,
	})
	if err != nil {
		h.logError("Failed to run code", err, "questionId", req.QuestionID)
		response.WriteErrorFrom(w, err)
		return
	}
	if result.Error != "" {
		handlers.ResponseError(w, result.Error, http.StatusBadRequest)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, RunResponse{Output: result.Output})
}

// Submit judges code against all test cases of a question.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteErrorFrom(w, errs.Unauthorized)
		return
	}
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	report, err := h.judgeService.Submit(r.Context(), userID, judge.SubmitRequest{
		Code:       req.Code,
		QuestionID: req.QuestionID,
		Language:   req.Language,
	})
	if err != nil {
		h.logError("Failed to judge submission", err, "questionId", req.QuestionID)
		response.WriteErrorFrom(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, report)
}

func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteErrorFrom(w, errs.Unauthorized)
		return
	}
	idStr := mux.Vars(r)["submissionId"]
	submissionID, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Debug("Invalid submission ID", "id", idStr)
		handlers.ResponseError(w, "Invalid submission ID", http.StatusBadRequest)
		return
	}

	submission, err := h.judgeService.GetSubmission(r.Context(), userID, submissionID)
	if err != nil {
		h.logError("Failed to get submission", err, "submissionId", submissionID)
		response.WriteErrorFrom(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, submission)
}

// ListSubmissions returns the caller's submissions, newest first, optionally
// narrowed by ?questionId=.
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteErrorFrom(w, errs.Unauthorized)
		return
	}
	var questionID *uuid.UUID
	if q := r.URL.Query().Get("questionId"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			handlers.ResponseError(w, "Invalid question ID", http.StatusBadRequest)
			return
		}
		questionID = &id
	}

	list, err := h.judgeService.ListSubmissions(r.Context(), userID, questionID)
	if err != nil {
		h.logError("Failed to list submissions", err)
		response.WriteErrorFrom(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, list)
}

func (h *SubmissionHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteErrorFrom(w, errs.Unauthorized)
		return
	}

	progress, err := h.judgeService.GetProgress(r.Context(), userID)
	if err != nil {
		h.logError("Failed to get progress", err)
		response.WriteErrorFrom(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, progress)
}

func (h *SubmissionHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	handlers.ResponseWithJson(w, http.StatusOK, LanguagesResponse{Languages: h.judgeService.Languages()})
}

// logError logs client mistakes at debug level and everything else as an
// error.
func (h *SubmissionHandler) logError(msg string, err error, args ...interface{}) {
	args = append(args, "error", err)
	if response.StatusCode(err) < http.StatusInternalServerError {
		h.logger.Debug(msg, args...)
		return
	}
	h.logger.Error(msg, args...)
}
