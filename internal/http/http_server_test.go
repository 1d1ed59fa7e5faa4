package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/adapter/memory"
	"gitlab.com/codejudge.net/internal/adapter/metrics"
	"gitlab.com/codejudge.net/internal/config"
	auth2 "gitlab.com/codejudge.net/internal/core/services/auth"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/domain"
)

type stdoutExecutor struct{}

func (stdoutExecutor) Languages() []string { return []string{"javascript"} }

func (stdoutExecutor) Execute(_ context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutcome, error) {
	return &domain.ExecutionOutcome{Stdout: req.Input, ElapsedTimeMs: 1, PeakMemoryMb: 1}, nil
}

func newTestServer(t *testing.T) (*Server, *domain.Question, string) {
	t.Helper()
	logger := logging.FromZap(zaptest.NewLogger(t))
	reg := prometheus.NewRegistry()

	questions := memory.NewQuestionStore()
	q := &domain.Question{
		ID:         uuid.New(),
		MaxRuntime: 1000,
		MaxMemory:  64,
		TestCases:  []domain.TestCase{{Input: "42", ExpectedOutput: "42"}},
	}
	require.NoError(t, questions.SaveQuestion(context.Background(), q))
	users := memory.NewUserStore()

	judgeSvc := judge.NewJudgeService(questions, memory.NewSubmissionStore(), users, stdoutExecutor{},
		metrics.New(reg), logger, &config.JudgeConfig{DefaultLanguage: "javascript", MaxConcurrent: 1, ListLimit: 10})
	jwtProvider := crypto.NewJWTService(&config.JwtConfig{Secret: "server-test"})
	provider := NewServiceProvider(judgeSvc, jwtProvider, nil, auth2.NewLocalAuthService(users, jwtProvider))

	srv := NewServer(0, "codejudge", *provider, &config.GGAuthConfig{}, reg, logger)
	require.NoError(t, srv.Init())

	tok, err := jwtProvider.GenerateTokenHMAC(context.Background(), "HS256", map[string]interface{}{"sub": uuid.NewString()})
	require.NoError(t, err)
	return srv, q, tok
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"codejudge"}`, rec.Body.String())
}

func TestMetricsAfterSubmit(t *testing.T) {
	srv, q, tok := newTestServer(t)
	h := srv.Handler()

	body := bytes.NewBufferString(`{"code":"print","questionId":"` + q.ID.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/submissions/submit", body)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `codejudge_verdicts_total{language="javascript",status="accepted"} 1`)
}

func TestGzipResponses(t *testing.T) {
	srv, _, tok := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// small bodies stay uncompressed
	if rec.Header().Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		b, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(b))
		return
	}
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestInitRequiresServices(t *testing.T) {
	srv := NewServer(0, "codejudge", ServiceProvider{}, &config.GGAuthConfig{}, nil, logging.FromZap(zaptest.NewLogger(t)))
	assert.Error(t, srv.Init())
}
